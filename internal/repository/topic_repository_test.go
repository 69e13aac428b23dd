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

func TestTopicRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTopicRepository(db)

	mock.ExpectQuery("INSERT INTO topics").
		WithArgs("Fracciones", int64(1), int64(2), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	topic := &models.Topic{
		Name:           "Fracciones",
		PeriodID:       1,
		SubjectID:      2,
		ExamWeight:     decimal.NewFromInt(40),
		PracticeWeight: decimal.NewFromInt(30),
		NotebookWeight: decimal.NewFromInt(20),
		OtherWeight:    decimal.NewFromInt(10),
	}
	require.NoError(t, repo.Create(context.Background(), topic))
	assert.Equal(t, int64(5), topic.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicRepositoryFindByIDScansWeights(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTopicRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "period_id", "subject_id", "exam_weight", "practice_weight", "notebook_weight", "other_weight"}).
		AddRow(int64(5), "Fracciones", int64(1), int64(2), "40", "30", "20", "10")
	mock.ExpectQuery("FROM topics WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	topic, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, topic.ExamWeight.Equal(decimal.NewFromInt(40)))
	assert.True(t, topic.CategoryWeight(models.CategoryOther).Equal(decimal.NewFromInt(10)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
