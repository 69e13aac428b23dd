package repository

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
)

func TestStudentRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("INSERT INTO students").
		WithArgs("Ana", "Gómez Pérez", nil, models.StudentStatusActive, int64(4), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	student := &models.Student{FirstName: "Ana", LastName: "Gómez Pérez", Status: models.StudentStatusActive, GroupID: 4}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.Equal(t, int64(7), student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositorySetQRCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET qr_code_id").
		WithArgs(int64(7), "AGP7").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetQRCode(context.Background(), 7, "AGP7"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByQRCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "qr_code_id", "contact_number", "status", "group_id", "classroom_user_id", "group_name", "group_grade", "subject_id", "subject_name"}).
		AddRow(int64(7), "Ana", "Gómez Pérez", "AGP7", nil, models.StudentStatusActive, int64(4), nil, "Grupo A", 3, int64(2), "Matemáticas")
	mock.ExpectQuery("WHERE st.qr_code_id").
		WithArgs("AGP7").
		WillReturnRows(rows)

	detail, err := repo.FindByQRCode(context.Background(), "AGP7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), detail.ID)
	assert.Equal(t, int64(2), detail.SubjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByQRCodeMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("WHERE st.qr_code_id").
		WithArgs("ZZZ99").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByQRCode(context.Background(), "ZZZ99")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListByGroupOrdersByLastName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "qr_code_id", "contact_number", "status", "group_id", "classroom_user_id"}).
		AddRow(int64(2), "Luis", "Alvarez", "LA2", nil, models.StudentStatusActive, int64(4), nil).
		AddRow(int64(1), "Ana", "Gómez Pérez", "AGP1", nil, models.StudentStatusActive, int64(4), nil)
	mock.ExpectQuery("ORDER BY last_name, first_name").
		WithArgs(int64(4), models.StudentStatusActive).
		WillReturnRows(rows)

	students, err := repo.ListByGroup(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Alvarez", students[0].LastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
