package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type mockSubjectRepo struct {
	subjects map[int64]*models.Subject
	nextID   int64
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[int64]*models.Subject)}
}

func (m *mockSubjectRepo) List(ctx context.Context, teacherID int64) ([]models.Subject, error) {
	var out []models.Subject
	for _, s := range m.subjects {
		if s.TeacherID == teacherID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubjectRepo) ExistsByNormalizedName(ctx context.Context, teacherID int64, normalized string, excludeID int64) (bool, error) {
	for _, s := range m.subjects {
		if s.TeacherID == teacherID && s.NormalizedName == normalized && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubjectRepo) ExistsByColor(ctx context.Context, teacherID int64, color string, excludeID int64) (bool, error) {
	for _, s := range m.subjects {
		if s.TeacherID == teacherID && s.Color == color && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	m.nextID++
	subject.ID = m.nextID
	copied := *subject
	m.subjects[subject.ID] = &copied
	return nil
}

func (m *mockSubjectRepo) Update(ctx context.Context, subject *models.Subject) error {
	copied := *subject
	m.subjects[subject.ID] = &copied
	return nil
}

func (m *mockSubjectRepo) Delete(ctx context.Context, id int64) error {
	delete(m.subjects, id)
	return nil
}

func TestSubjectServiceCreateNormalizesName(t *testing.T) {
	repo := newMockSubjectRepo()
	svc := NewSubjectService(repo, nil, nil)

	subject, err := svc.Create(context.Background(), 1, CreateSubjectRequest{Name: "Matemáticas", Color: "#FF5722"})
	require.NoError(t, err)
	assert.Equal(t, "Matemáticas", subject.Name)
	assert.Equal(t, "MATEMATICAS", subject.NormalizedName)
}

func TestSubjectServiceAccentInsensitiveDuplicate(t *testing.T) {
	repo := newMockSubjectRepo()
	svc := NewSubjectService(repo, nil, nil)

	_, err := svc.Create(context.Background(), 1, CreateSubjectRequest{Name: "Matemáticas", Color: "#FF5722"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, CreateSubjectRequest{Name: "matematicas", Color: "#2196F3"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrConflict.Code, errors.FromError(err).Code)
}

func TestSubjectServiceDuplicateColor(t *testing.T) {
	repo := newMockSubjectRepo()
	svc := NewSubjectService(repo, nil, nil)

	_, err := svc.Create(context.Background(), 1, CreateSubjectRequest{Name: "Matemáticas", Color: "#FF5722"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, CreateSubjectRequest{Name: "Física", Color: "#FF5722"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrConflict.Code, errors.FromError(err).Code)
}

func TestSubjectServiceUpdateKeepsOwnName(t *testing.T) {
	repo := newMockSubjectRepo()
	svc := NewSubjectService(repo, nil, nil)

	subject, err := svc.Create(context.Background(), 1, CreateSubjectRequest{Name: "Matemáticas", Color: "#FF5722"})
	require.NoError(t, err)

	// Renaming to itself (different casing) must not trip the unique check.
	updated, err := svc.Update(context.Background(), subject.ID, UpdateSubjectRequest{Name: "MATEMÁTICAS", Color: "#FF5722"})
	require.NoError(t, err)
	assert.Equal(t, "MATEMATICAS", updated.NormalizedName)
}

func TestSubjectServiceCreateRejectsBadColor(t *testing.T) {
	svc := NewSubjectService(newMockSubjectRepo(), nil, nil)

	_, err := svc.Create(context.Background(), 1, CreateSubjectRequest{Name: "Matemáticas", Color: "red"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrValidation.Code, errors.FromError(err).Code)
}
