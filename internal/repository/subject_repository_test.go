package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSubjectRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "normalized_name", "color", "teacher_id"}).
		AddRow(int64(1), "Matemáticas", "MATEMATICAS", "#FF5722", int64(1)).
		AddRow(int64(2), "Física", "FISICA", "#2196F3", int64(1))
	mock.ExpectQuery("SELECT id, name, normalized_name, color, teacher_id FROM subjects").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	subjects, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, subjects, 2)
	assert.Equal(t, "MATEMATICAS", subjects[0].NormalizedName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryDeleteIsSingleStatement(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	// groups, students, topics etc. fall with the subject via FK cascade
	mock.ExpectExec("DELETE FROM subjects WHERE id").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery("INSERT INTO subjects").
		WithArgs("Matemáticas", "MATEMATICAS", "#FF5722", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	subject := &models.Subject{Name: "Matemáticas", NormalizedName: "MATEMATICAS", Color: "#FF5722", TeacherID: 1}
	require.NoError(t, repo.Create(context.Background(), subject))
	assert.Equal(t, int64(7), subject.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryExistsByNormalizedName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery("SELECT 1 FROM subjects").
		WithArgs(int64(1), "MATEMATICAS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(1))

	exists, err := repo.ExistsByNormalizedName(context.Background(), 1, "MATEMATICAS", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryExistsByNormalizedNameExcludesSelf(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery("SELECT 1 FROM subjects").
		WithArgs(int64(1), "MATEMATICAS", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}))

	exists, err := repo.ExistsByNormalizedName(context.Background(), 1, "MATEMATICAS", 3)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
