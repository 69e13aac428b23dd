// Package grading holds the pure domain rules for topic weights and the
// weighted aggregation of assignment grades into topic grades.
package grading

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/edugo-labs/aula-api/internal/models"
	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
)

var weightTotal = decimal.NewFromInt(100)

// ValidateWeights checks that each category weight lies in [0,100] and that
// the four sum to exactly 100. Equality is exact on the decimal value; grade
// aggregation depends on it, so float tolerance is not acceptable here.
func ValidateWeights(exam, practice, notebook, other decimal.Decimal) error {
	for _, w := range []struct {
		category models.AssignmentCategory
		value    decimal.Decimal
	}{
		{models.CategoryExam, exam},
		{models.CategoryPractice, practice},
		{models.CategoryNotebook, notebook},
		{models.CategoryOther, other},
	} {
		if w.value.IsNegative() || w.value.GreaterThan(weightTotal) {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s weight must be between 0 and 100", w.category))
		}
	}

	sum := exam.Add(practice).Add(notebook).Add(other)
	if !sum.Equal(weightTotal) {
		return appErrors.Clone(appErrors.ErrInvalidWeights, fmt.Sprintf("weights sum to %s, expected 100", sum))
	}
	return nil
}
