package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type periodRepository interface {
	List(ctx context.Context) ([]models.Period, error)
	FindByID(ctx context.Context, id int64) (*models.Period, error)
	FindByDate(ctx context.Context, at time.Time) (*models.Period, error)
	Create(ctx context.Context, period *models.Period) error
	Update(ctx context.Context, period *models.Period) error
	Delete(ctx context.Context, id int64) error
}

// PeriodRequest holds payload for creating and updating grading periods.
type PeriodRequest struct {
	Name      string    `json:"name" validate:"required,max=120"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// PeriodService handles grading period use-cases.
type PeriodService struct {
	repo      periodRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPeriodService constructs the period service.
func NewPeriodService(repo periodRepository, validate *validator.Validate, logger *zap.Logger) *PeriodService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodService{repo: repo, validator: validate, logger: logger}
}

// List returns all periods ordered by start date.
func (s *PeriodService) List(ctx context.Context) ([]models.Period, error) {
	periods, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list periods")
	}
	return periods, nil
}

// Get returns a period by ID.
func (s *PeriodService) Get(ctx context.Context, id int64) (*models.Period, error) {
	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "period not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load period")
	}
	return period, nil
}

// Current returns the period containing the given moment. An out-of-period
// date is an invalid state, not a missing row: attendance and grading both
// need an active period to attach to.
func (s *PeriodService) Current(ctx context.Context, at time.Time) (*models.Period, error) {
	period, err := s.repo.FindByDate(ctx, at)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrInvalidState, "no grading period covers this date")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to resolve period")
	}
	return period, nil
}

// Create registers a new period.
func (s *PeriodService) Create(ctx context.Context, req PeriodRequest) (*models.Period, error) {
	if err := s.validateRange(req); err != nil {
		return nil, err
	}
	period := &models.Period{Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate}
	if err := s.repo.Create(ctx, period); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to create period")
	}
	s.logger.Info("period created", zap.Int64("period_id", period.ID), zap.String("name", period.Name))
	return period, nil
}

// Update modifies a period.
func (s *PeriodService) Update(ctx context.Context, id int64, req PeriodRequest) (*models.Period, error) {
	if err := s.validateRange(req); err != nil {
		return nil, err
	}
	period, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	period.Name = req.Name
	period.StartDate = req.StartDate
	period.EndDate = req.EndDate
	if err := s.repo.Update(ctx, period); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to update period")
	}
	return period, nil
}

// Delete removes a period.
func (s *PeriodService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete period")
	}
	return nil
}

func (s *PeriodService) validateRange(req PeriodRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid period payload")
	}
	if !req.EndDate.After(req.StartDate) {
		return errors.Clone(errors.ErrValidation, "end date must be after start date")
	}
	return nil
}
