package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
)

func TestScheduleRepositoryUpsertReassignsOccupiedSlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectQuery(`ON CONFLICT \(day_of_week, start_time\)\s+DO UPDATE SET group_id = EXCLUDED\.group_id`).
		WithArgs(int64(5), 2, "10:00", "11:30").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	entry := &models.ScheduleEntry{GroupID: 5, DayOfWeek: 2, StartTime: "10:00", EndTime: "11:30"}
	require.NoError(t, repo.Upsert(context.Background(), entry))
	assert.Equal(t, int64(9), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryListWeekScansGroupContext(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "group_id", "day_of_week", "start_time", "end_time",
		"group_name", "group_grade", "group_color", "subject_id", "subject_name"}).
		AddRow(int64(9), int64(5), 2, "10:00", "11:30", "Grupo B", 3, "#4CAF50", int64(2), "Matemáticas")
	mock.ExpectQuery("FROM schedule_entries se").WillReturnRows(rows)

	entries, err := repo.ListWeek(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "#4CAF50", entries[0].GroupColor)
	assert.Equal(t, "Matemáticas", entries[0].SubjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
