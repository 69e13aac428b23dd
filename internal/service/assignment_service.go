package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type assignmentRepository interface {
	ListByTopic(ctx context.Context, topicID int64) ([]models.Assignment, error)
	FindByID(ctx context.Context, id int64) (*models.Assignment, error)
	ExistsByCategory(ctx context.Context, topicID int64, category models.AssignmentCategory, excludeID int64) (bool, error)
	ExistsByClassroomAssignment(ctx context.Context, topicID int64, classroomAssignmentID string) (bool, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id int64) error
}

// AssignmentRequest holds payload for creating and updating assignments.
// Weight is only meaningful for the notebook category, where several entries
// can split the category total.
type AssignmentRequest struct {
	Name                  string                    `json:"name" validate:"required,max=160"`
	Category              models.AssignmentCategory `json:"category" validate:"required"`
	MaxGrade              decimal.Decimal           `json:"max_grade"`
	Weight                *decimal.Decimal          `json:"weight"`
	ClassroomAssignmentID *string                   `json:"classroom_assignment_id"`
}

// AssignmentService handles assignment use-cases. A single entity covers all
// grading categories; the category field decides the rules that apply.
type AssignmentService struct {
	repo      assignmentRepository
	topics    topicRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(repo assignmentRepository, topics topicRepository, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, topics: topics, validator: validate, logger: logger}
}

// ListByTopic returns the assignments of a topic.
func (s *AssignmentService) ListByTopic(ctx context.Context, topicID int64) ([]models.Assignment, error) {
	assignments, err := s.repo.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// Get returns an assignment by ID.
func (s *AssignmentService) Get(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "assignment not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load assignment")
	}
	return assignment, nil
}

// Create registers an assignment under a topic. Exams are limited to one per
// topic; a racing duplicate is caught by the partial unique index.
func (s *AssignmentService) Create(ctx context.Context, topicID int64, req AssignmentRequest) (*models.Assignment, error) {
	if err := s.validatePayload(req); err != nil {
		return nil, err
	}
	if _, err := s.topics.FindByID(ctx, topicID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "topic not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load topic")
	}
	if req.Category == models.CategoryExam {
		taken, err := s.repo.ExistsByCategory(ctx, topicID, models.CategoryExam, 0)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to validate exam")
		}
		if taken {
			return nil, errors.Clone(errors.ErrConflict, "topic already has an exam")
		}
	}
	if req.ClassroomAssignmentID != nil {
		linked, err := s.repo.ExistsByClassroomAssignment(ctx, topicID, *req.ClassroomAssignmentID)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to validate classroom link")
		}
		if linked {
			return nil, errors.Clone(errors.ErrConflict, "classroom coursework already linked")
		}
	}
	assignment := &models.Assignment{
		Name:                  req.Name,
		Category:              req.Category,
		MaxGrade:              req.MaxGrade,
		Weight:                req.Weight,
		TopicID:               topicID,
		ClassroomAssignmentID: req.ClassroomAssignmentID,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, mapWriteError(err, "topic already has an exam", "failed to create assignment")
	}
	s.logger.Info("assignment created",
		zap.Int64("assignment_id", assignment.ID),
		zap.String("category", string(assignment.Category)))
	return assignment, nil
}

// Update modifies an assignment, re-checking the exam limit when the change
// moves it into the exam category.
func (s *AssignmentService) Update(ctx context.Context, id int64, req AssignmentRequest) (*models.Assignment, error) {
	if err := s.validatePayload(req); err != nil {
		return nil, err
	}
	assignment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Category == models.CategoryExam {
		taken, err := s.repo.ExistsByCategory(ctx, assignment.TopicID, models.CategoryExam, id)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to validate exam")
		}
		if taken {
			return nil, errors.Clone(errors.ErrConflict, "topic already has an exam")
		}
	}
	assignment.Name = req.Name
	assignment.Category = req.Category
	assignment.MaxGrade = req.MaxGrade
	assignment.Weight = req.Weight
	assignment.ClassroomAssignmentID = req.ClassroomAssignmentID
	if err := s.repo.Update(ctx, assignment); err != nil {
		return nil, mapWriteError(err, "topic already has an exam", "failed to update assignment")
	}
	return assignment, nil
}

// Delete removes an assignment and its recorded grades.
func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}

func (s *AssignmentService) validatePayload(req AssignmentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid assignment payload")
	}
	if !req.Category.Valid() {
		return errors.Clone(errors.ErrValidation, "unknown assignment category")
	}
	if !req.MaxGrade.IsPositive() {
		return errors.Clone(errors.ErrValidation, "max grade must be positive")
	}
	if req.Weight != nil && req.Category != models.CategoryNotebook {
		return errors.Clone(errors.ErrValidation, "weight only applies to notebook assignments")
	}
	if req.Weight != nil && (req.Weight.IsNegative() || req.Weight.GreaterThan(decimal.NewFromInt(100))) {
		return errors.Clone(errors.ErrValidation, "weight must be between 0 and 100")
	}
	return nil
}
