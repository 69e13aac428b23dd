package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type scheduleRepository interface {
	ListByGroup(ctx context.Context, groupID int64) ([]models.ScheduleEntry, error)
	ListWeek(ctx context.Context) ([]models.ScheduleDetail, error)
	Upsert(ctx context.Context, entry *models.ScheduleEntry) error
	Delete(ctx context.Context, id int64) error
}

// ScheduleEntryRequest holds payload for placing a timetable slot. Times are
// "HH:MM" in the school's local time; day 0 is Monday.
type ScheduleEntryRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// ScheduleService handles weekly timetable use-cases.
type ScheduleService struct {
	repo      scheduleRepository
	groups    groupRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(repo scheduleRepository, groups groupRepository, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, groups: groups, validator: validate, logger: logger}
}

// ListByGroup returns a group's timetable.
func (s *ScheduleService) ListByGroup(ctx context.Context, groupID int64) ([]models.ScheduleEntry, error) {
	entries, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list schedule")
	}
	return entries, nil
}

// Week returns the full weekly timetable across all groups.
func (s *ScheduleService) Week(ctx context.Context) ([]models.ScheduleDetail, error) {
	entries, err := s.repo.ListWeek(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list schedule")
	}
	return entries, nil
}

// Place stores a timetable slot for a group. A slot is global: placing a
// group onto an occupied (day, start time) pair takes it over from whichever
// group held it.
func (s *ScheduleService) Place(ctx context.Context, groupID int64, req ScheduleEntryRequest) (*models.ScheduleEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid schedule payload")
	}
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, errors.Clone(errors.ErrValidation, "start time must be HH:MM")
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, errors.Clone(errors.ErrValidation, "end time must be HH:MM")
	}
	if !end.After(start) {
		return nil, errors.Clone(errors.ErrValidation, "end time must be after start time")
	}
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		return nil, errors.Clone(errors.ErrNotFound, "group not found")
	}
	entry := &models.ScheduleEntry{
		GroupID:   groupID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to store schedule entry")
	}
	s.logger.Info("schedule entry placed",
		zap.Int64("group_id", groupID),
		zap.Int("day_of_week", req.DayOfWeek),
		zap.String("start_time", req.StartTime))
	return entry, nil
}

// Remove deletes a timetable slot.
func (s *ScheduleService) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete schedule entry")
	}
	return nil
}

func parseClock(v string) (time.Time, error) {
	return time.Parse("15:04", v)
}
