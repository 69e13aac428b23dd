package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type groupRepository interface {
	ListBySubject(ctx context.Context, subjectID int64) ([]models.Group, error)
	ListAll(ctx context.Context) ([]models.GroupDetail, error)
	FindByID(ctx context.Context, id int64) (*models.GroupDetail, error)
	ExistsByColor(ctx context.Context, color string, excludeID int64) (bool, error)
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id int64) error
}

// CreateGroupRequest holds payload for creating groups.
type CreateGroupRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Grade     int    `json:"grade" validate:"required,min=1,max=12"`
	Color     string `json:"color" validate:"required,hexcolor"`
	SubjectID int64  `json:"subject_id" validate:"required"`
}

// UpdateGroupRequest holds payload for updating groups.
type UpdateGroupRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Grade int    `json:"grade" validate:"required,min=1,max=12"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// GroupService handles class-group use-cases.
type GroupService struct {
	repo      groupRepository
	subjects  subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGroupService constructs the group service.
func NewGroupService(repo groupRepository, subjects subjectRepository, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{repo: repo, subjects: subjects, validator: validate, logger: logger}
}

// ListBySubject returns the groups of a subject.
func (s *GroupService) ListBySubject(ctx context.Context, subjectID int64) ([]models.Group, error) {
	groups, err := s.repo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list groups")
	}
	return groups, nil
}

// ListAll returns every group with its subject attached.
func (s *GroupService) ListAll(ctx context.Context) ([]models.GroupDetail, error) {
	groups, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list groups")
	}
	return groups, nil
}

// Get returns a group by ID.
func (s *GroupService) Get(ctx context.Context, id int64) (*models.GroupDetail, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "group not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load group")
	}
	return group, nil
}

// Create registers a new group under a subject. The color must be unique
// across all groups.
func (s *GroupService) Create(ctx context.Context, req CreateGroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid group payload")
	}
	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "subject not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load subject")
	}
	taken, err := s.repo.ExistsByColor(ctx, req.Color, 0)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to validate group color")
	}
	if taken {
		return nil, errors.Clone(errors.ErrConflict, "group color already used")
	}
	group := &models.Group{
		Name:      req.Name,
		Grade:     req.Grade,
		Color:     req.Color,
		SubjectID: req.SubjectID,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, mapWriteError(err, "group color already used", "failed to create group")
	}
	s.logger.Info("group created", zap.Int64("group_id", group.ID), zap.Int64("subject_id", group.SubjectID))
	return group, nil
}

// Update modifies a group.
func (s *GroupService) Update(ctx context.Context, id int64, req UpdateGroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid group payload")
	}
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.ExistsByColor(ctx, req.Color, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to validate group color")
	}
	if taken {
		return nil, errors.Clone(errors.ErrConflict, "group color already used")
	}
	group := &models.Group{
		ID:        id,
		Name:      req.Name,
		Grade:     req.Grade,
		Color:     req.Color,
		SubjectID: detail.SubjectID,
	}
	if err := s.repo.Update(ctx, group); err != nil {
		return nil, mapWriteError(err, "group color already used", "failed to update group")
	}
	return group, nil
}

// Delete removes a group and its students.
func (s *GroupService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete group")
	}
	s.logger.Info("group deleted", zap.Int64("group_id", id))
	return nil
}
