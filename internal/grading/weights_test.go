package grading

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestValidateWeightsSumIs100(t *testing.T) {
	assert.NoError(t, ValidateWeights(d("40"), d("30"), d("20"), d("10")))
	assert.NoError(t, ValidateWeights(d("100"), d("0"), d("0"), d("0")))
	assert.NoError(t, ValidateWeights(d("33.33"), d("33.33"), d("33.34"), d("0")))
}

func TestValidateWeightsRejectsBadSum(t *testing.T) {
	err := ValidateWeights(d("40"), d("30"), d("20"), d("5"))
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidWeights.Code, appErr.Code)
}

func TestValidateWeightsExactDecimalEquality(t *testing.T) {
	// 0.1-style fractions that would pass a float epsilon check must still
	// be judged on the exact decimal sum.
	err := ValidateWeights(d("33.33"), d("33.33"), d("33.33"), d("0"))
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidWeights.Code, appErr.Code)
}

func TestValidateWeightsRange(t *testing.T) {
	err := ValidateWeights(d("-10"), d("60"), d("30"), d("20"))
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	err = ValidateWeights(d("110"), d("-10"), d("0"), d("0"))
	require.Error(t, err)
}
