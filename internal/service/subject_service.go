package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/identity"
)

type subjectRepository interface {
	List(ctx context.Context, teacherID int64) ([]models.Subject, error)
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
	ExistsByNormalizedName(ctx context.Context, teacherID int64, normalized string, excludeID int64) (bool, error)
	ExistsByColor(ctx context.Context, teacherID int64, color string, excludeID int64) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// CreateSubjectRequest holds payload for creating subjects.
type CreateSubjectRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// UpdateSubjectRequest holds payload for updating subjects.
type UpdateSubjectRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// SubjectService handles subject use-cases. Names are compared in their
// accent-folded uppercase form, so "Matemáticas" and "matematicas" collide.
type SubjectService struct {
	repo      subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, validator: validate, logger: logger}
}

// List returns the teacher's subjects.
func (s *SubjectService) List(ctx context.Context, teacherID int64) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Get returns a subject by ID.
func (s *SubjectService) Get(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "subject not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// Create registers a new subject after checking name and color uniqueness.
func (s *SubjectService) Create(ctx context.Context, teacherID int64, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid subject payload")
	}
	normalized := identity.Normalize(req.Name)
	if err := s.checkUnique(ctx, teacherID, normalized, req.Color, 0); err != nil {
		return nil, err
	}
	subject := &models.Subject{
		Name:           req.Name,
		NormalizedName: normalized,
		Color:          req.Color,
		TeacherID:      teacherID,
	}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, mapWriteError(err, "subject already exists", "failed to create subject")
	}
	s.logger.Info("subject created", zap.Int64("subject_id", subject.ID), zap.String("name", subject.Name))
	return subject, nil
}

// Update modifies a subject, re-checking uniqueness against its siblings.
func (s *SubjectService) Update(ctx context.Context, id int64, req UpdateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid subject payload")
	}
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	normalized := identity.Normalize(req.Name)
	if err := s.checkUnique(ctx, subject.TeacherID, normalized, req.Color, id); err != nil {
		return nil, err
	}
	subject.Name = req.Name
	subject.NormalizedName = normalized
	subject.Color = req.Color
	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, mapWriteError(err, "subject already exists", "failed to update subject")
	}
	return subject, nil
}

// Delete removes a subject and its dependent groups, topics and grades.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete subject")
	}
	s.logger.Info("subject deleted", zap.Int64("subject_id", id))
	return nil
}

func (s *SubjectService) checkUnique(ctx context.Context, teacherID int64, normalized, color string, excludeID int64) error {
	taken, err := s.repo.ExistsByNormalizedName(ctx, teacherID, normalized, excludeID)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to validate subject name")
	}
	if taken {
		return errors.Clone(errors.ErrConflict, "subject name already used")
	}
	taken, err = s.repo.ExistsByColor(ctx, teacherID, color, excludeID)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to validate subject color")
	}
	if taken {
		return errors.Clone(errors.ErrConflict, "subject color already used")
	}
	return nil
}
