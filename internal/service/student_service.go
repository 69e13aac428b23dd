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

type studentRepository interface {
	ListByGroup(ctx context.Context, groupID int64) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	FindByQRCode(ctx context.Context, qrCodeID string) (*models.StudentDetail, error)
	ExistsByClassroomUser(ctx context.Context, groupID int64, classroomUserID string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	SetQRCode(ctx context.Context, id int64, qrCodeID string) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	FirstName       string  `json:"first_name" validate:"required,max=120"`
	LastName        string  `json:"last_name" validate:"required,max=120"`
	ContactNumber   *string `json:"contact_number" validate:"omitempty,max=30"`
	GroupID         int64   `json:"group_id" validate:"required"`
	ClassroomUserID *string `json:"classroom_user_id"`
}

// UpdateStudentRequest holds payload for updating students.
type UpdateStudentRequest struct {
	FirstName       string  `json:"first_name" validate:"required,max=120"`
	LastName        string  `json:"last_name" validate:"required,max=120"`
	ContactNumber   *string `json:"contact_number" validate:"omitempty,max=30"`
	Status          string  `json:"status" validate:"required,oneof=active inactive"`
	ClassroomUserID *string `json:"classroom_user_id"`
}

// StudentService handles student use-cases. Names are stored capitalized and
// every student gets a QR identifier derived from the name and the database
// ID, so the identifier is stable for the row's lifetime.
type StudentService struct {
	repo      studentRepository
	groups    groupRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, groups groupRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, groups: groups, validator: validate, logger: logger}
}

// ListByGroup returns the active students of a group ordered by last name.
func (s *StudentService) ListByGroup(ctx context.Context, groupID int64) ([]models.Student, error) {
	students, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get returns detailed student information.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "student not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Create registers a new student and assigns their QR identifier. The insert
// runs first so the generated ID can feed the derivation.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid student payload")
	}
	if _, err := s.groups.FindByID(ctx, req.GroupID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "group not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load group")
	}
	if req.ClassroomUserID != nil {
		if err := s.checkClassroomUser(ctx, req.GroupID, *req.ClassroomUserID, 0); err != nil {
			return nil, err
		}
	}
	student := &models.Student{
		FirstName:       identity.CapitalizeName(req.FirstName),
		LastName:        identity.CapitalizeName(req.LastName),
		ContactNumber:   req.ContactNumber,
		Status:          models.StudentStatusActive,
		GroupID:         req.GroupID,
		ClassroomUserID: req.ClassroomUserID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, mapWriteError(err, "classroom user already linked", "failed to create student")
	}
	qrCodeID := identity.DeriveQRID(student.FirstName, student.LastName, student.ID)
	if err := s.repo.SetQRCode(ctx, student.ID, qrCodeID); err != nil {
		return nil, mapWriteError(err, "qr code already assigned", "failed to assign qr code")
	}
	student.QRCodeID = &qrCodeID
	s.logger.Info("student created",
		zap.Int64("student_id", student.ID),
		zap.String("qr_code_id", qrCodeID))
	return student, nil
}

// Update modifies a student. The QR identifier is left untouched: printed
// cards must keep working even after a name correction.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid student payload")
	}
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ClassroomUserID != nil {
		if err := s.checkClassroomUser(ctx, detail.GroupID, *req.ClassroomUserID, id); err != nil {
			return nil, err
		}
	}
	student := detail.Student
	student.FirstName = identity.CapitalizeName(req.FirstName)
	student.LastName = identity.CapitalizeName(req.LastName)
	student.ContactNumber = req.ContactNumber
	student.Status = req.Status
	student.ClassroomUserID = req.ClassroomUserID
	if err := s.repo.Update(ctx, &student); err != nil {
		return nil, mapWriteError(err, "classroom user already linked", "failed to update student")
	}
	return &student, nil
}

// Delete removes a student together with their grades and attendance.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}

func (s *StudentService) checkClassroomUser(ctx context.Context, groupID int64, classroomUserID string, excludeID int64) error {
	linked, err := s.repo.ExistsByClassroomUser(ctx, groupID, classroomUserID, excludeID)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to validate classroom user")
	}
	if linked {
		return errors.Clone(errors.ErrConflict, "classroom user already linked to another student")
	}
	return nil
}
