package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
)

func TestAttendanceRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	scannedAt := time.Date(2026, 3, 9, 8, 15, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO attendance_records").
		WithArgs(int64(7), int64(2), int64(1), scannedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))

	record := &models.AttendanceRecord{StudentID: 7, SubjectID: 2, PeriodID: 1, Timestamp: scannedAt}
	require.NoError(t, repo.Insert(context.Background(), record))
	assert.Equal(t, int64(31), record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListByWindow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	rows := sqlmock.NewRows([]string{"id", "student_id", "subject_id", "period_id", "timestamp", "student_first_name", "student_last_name", "group_name", "group_grade", "subject_name", "period_name"}).
		AddRow(int64(32), int64(8), int64(2), int64(1), from.Add(9*time.Hour), "Luis", "Alvarez", "Grupo A", 3, "Matemáticas", "Periodo 1").
		AddRow(int64(31), int64(7), int64(2), int64(1), from.Add(8*time.Hour), "Ana", "Gómez", "Grupo A", 3, "Matemáticas", "Periodo 1")
	mock.ExpectQuery("ORDER BY ar.timestamp DESC").
		WithArgs(from, to).
		WillReturnRows(rows)

	records, err := repo.ListByWindow(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Timestamp.After(records[1].Timestamp))
	assert.NoError(t, mock.ExpectationsWereMet())
}
