package service

import (
	"context"
	"database/sql"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/identity"
)

type teacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	Find(ctx context.Context) (*models.Teacher, error)
	Exists(ctx context.Context) (bool, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	SetGoogleCredentials(ctx context.Context, id int64, credentials *string) error
}

type photoStorage interface {
	SaveStream(originalName string, r io.Reader) (string, error)
	Remove(filename string) error
}

// TeacherRequest holds payload for creating and updating the teacher profile.
type TeacherRequest struct {
	FirstName string `json:"first_name" validate:"required,max=120"`
	LastName  string `json:"last_name" validate:"required,max=120"`
	Email     string `json:"email" validate:"required,email"`
}

// TeacherService manages the single teacher profile. The application serves
// one teacher; the first created profile is the profile, and further create
// attempts conflict.
type TeacherService struct {
	repo      teacherRepository
	storage   photoStorage
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(repo teacherRepository, storage photoStorage, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, storage: storage, validator: validate, logger: logger}
}

// Get returns the teacher profile.
func (s *TeacherService) Get(ctx context.Context) (*models.Teacher, error) {
	teacher, err := s.repo.Find(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "teacher profile not created yet")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load teacher")
	}
	return teacher, nil
}

// Create sets up the teacher profile. Only one profile can exist.
func (s *TeacherService) Create(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid teacher payload")
	}
	exists, err := s.repo.Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to check teacher")
	}
	if exists {
		return nil, errors.Clone(errors.ErrConflict, "teacher profile already exists")
	}
	teacher := &models.Teacher{
		FirstName: identity.CapitalizeName(req.FirstName),
		LastName:  identity.CapitalizeName(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, mapWriteError(err, "email already registered", "failed to create teacher")
	}
	s.logger.Info("teacher profile created", zap.Int64("teacher_id", teacher.ID))
	return teacher, nil
}

// Update modifies the teacher profile.
func (s *TeacherService) Update(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid teacher payload")
	}
	teacher, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	teacher.FirstName = identity.CapitalizeName(req.FirstName)
	teacher.LastName = identity.CapitalizeName(req.LastName)
	teacher.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to update teacher")
	}
	return teacher, nil
}

// SetPhoto stores a new profile photo and drops the previous one.
func (s *TeacherService) SetPhoto(ctx context.Context, originalName string, r io.Reader) (*models.Teacher, error) {
	teacher, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	filename, err := s.storage.SaveStream(originalName, r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to store photo")
	}
	previous := teacher.ProfilePhotoURL
	teacher.ProfilePhotoURL = &filename
	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to update teacher")
	}
	if previous != nil {
		if err := s.storage.Remove(*previous); err != nil {
			s.logger.Warn("failed to remove previous photo", zap.String("filename", *previous), zap.Error(err))
		}
	}
	return teacher, nil
}
