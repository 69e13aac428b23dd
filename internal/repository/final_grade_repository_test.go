package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
)

func TestFinalGradeRepositoryFindScansPeriodColumns(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFinalGradeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "subject_id", "period1_grade", "period2_grade", "period3_grade", "final_year_grade"}).
		AddRow(int64(3), int64(7), int64(2), "85.5", "90", nil, "88")
	mock.ExpectQuery("FROM final_grades WHERE student_id").
		WithArgs(int64(7), int64(2)).
		WillReturnRows(rows)

	grade, err := repo.Find(context.Background(), 7, 2)
	require.NoError(t, err)
	require.NotNil(t, grade.Period1Grade)
	assert.True(t, grade.Period1Grade.Equal(decimal.RequireFromString("85.5")))
	assert.Nil(t, grade.Period3Grade)
	require.NotNil(t, grade.FinalYearGrade)
	assert.True(t, grade.FinalYearGrade.Equal(decimal.NewFromInt(88)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalGradeRepositoryUpsertReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFinalGradeRepository(db)

	mock.ExpectQuery("INSERT INTO final_grades").
		WithArgs(int64(7), int64(2), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	p1 := decimal.RequireFromString("85.5")
	grade := &models.FinalGrade{StudentID: 7, SubjectID: 2, Period1Grade: &p1}
	require.NoError(t, repo.Upsert(context.Background(), grade))
	assert.Equal(t, int64(3), grade.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
