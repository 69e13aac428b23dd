package service

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type mockTeacherRepo struct {
	teacher *models.Teacher
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	teacher.ID = 1
	copied := *teacher
	m.teacher = &copied
	return nil
}

func (m *mockTeacherRepo) Find(ctx context.Context) (*models.Teacher, error) {
	if m.teacher == nil {
		return nil, sql.ErrNoRows
	}
	copied := *m.teacher
	return &copied, nil
}

func (m *mockTeacherRepo) Exists(ctx context.Context) (bool, error) {
	return m.teacher != nil, nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	copied := *teacher
	m.teacher = &copied
	return nil
}

func (m *mockTeacherRepo) SetGoogleCredentials(ctx context.Context, id int64, credentials *string) error {
	m.teacher.GoogleCredentials = credentials
	return nil
}

type mockPhotoStorage struct {
	saved   []string
	removed []string
}

func (m *mockPhotoStorage) SaveStream(originalName string, r io.Reader) (string, error) {
	name := "stored-" + originalName
	m.saved = append(m.saved, name)
	return name, nil
}

func (m *mockPhotoStorage) Remove(filename string) error {
	m.removed = append(m.removed, filename)
	return nil
}

func TestTeacherServiceCreateOnlyOnce(t *testing.T) {
	svc := NewTeacherService(&mockTeacherRepo{}, &mockPhotoStorage{}, nil, nil)

	teacher, err := svc.Create(context.Background(), TeacherRequest{
		FirstName: "maría", LastName: "lópez", Email: "Maria@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "María", teacher.FirstName)
	assert.Equal(t, "maria@example.com", teacher.Email)

	_, err = svc.Create(context.Background(), TeacherRequest{
		FirstName: "Otra", LastName: "Persona", Email: "otra@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrConflict.Code, errors.FromError(err).Code)
}

type duplicateEmailTeacherRepo struct {
	mockTeacherRepo
}

func (m *duplicateEmailTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	return &pq.Error{Code: "23505", Constraint: "teachers_email_key"}
}

func TestTeacherServiceCreateDuplicateEmail(t *testing.T) {
	svc := NewTeacherService(&duplicateEmailTeacherRepo{}, &mockPhotoStorage{}, nil, nil)

	_, err := svc.Create(context.Background(), TeacherRequest{
		FirstName: "María", LastName: "López", Email: "maria@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrConflict.Code, errors.FromError(err).Code)
}

func TestTeacherServiceGetBeforeCreate(t *testing.T) {
	svc := NewTeacherService(&mockTeacherRepo{}, &mockPhotoStorage{}, nil, nil)

	_, err := svc.Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrNotFound.Code, errors.FromError(err).Code)
}

func TestTeacherServiceSetPhotoReplacesPrevious(t *testing.T) {
	repo := &mockTeacherRepo{}
	store := &mockPhotoStorage{}
	svc := NewTeacherService(repo, store, nil, nil)

	_, err := svc.Create(context.Background(), TeacherRequest{
		FirstName: "María", LastName: "López", Email: "maria@example.com",
	})
	require.NoError(t, err)

	_, err = svc.SetPhoto(context.Background(), "first.png", nil)
	require.NoError(t, err)
	teacher, err := svc.SetPhoto(context.Background(), "second.png", nil)
	require.NoError(t, err)

	require.NotNil(t, teacher.ProfilePhotoURL)
	assert.Equal(t, "stored-second.png", *teacher.ProfilePhotoURL)
	assert.Equal(t, []string{"stored-first.png"}, store.removed)
}
