package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/grading"
	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type topicRepository interface {
	List(ctx context.Context, subjectID, periodID int64) ([]models.Topic, error)
	ListBySubject(ctx context.Context, subjectID int64) ([]models.Topic, error)
	FindByID(ctx context.Context, id int64) (*models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) error
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id int64) error
}

// CreateTopicRequest holds payload for creating topics. All four weights are
// required together and must sum to exactly 100.
type CreateTopicRequest struct {
	Name           string          `json:"name" validate:"required,max=120"`
	PeriodID       int64           `json:"period_id" validate:"required"`
	SubjectID      int64           `json:"subject_id" validate:"required"`
	ExamWeight     decimal.Decimal `json:"exam_weight"`
	PracticeWeight decimal.Decimal `json:"practice_weight"`
	NotebookWeight decimal.Decimal `json:"notebook_weight"`
	OtherWeight    decimal.Decimal `json:"other_weight"`
}

// UpdateTopicRequest holds payload for updating topics. Weights are optional;
// omitted ones keep their stored value, and the merged set is validated.
type UpdateTopicRequest struct {
	Name           string           `json:"name" validate:"required,max=120"`
	ExamWeight     *decimal.Decimal `json:"exam_weight"`
	PracticeWeight *decimal.Decimal `json:"practice_weight"`
	NotebookWeight *decimal.Decimal `json:"notebook_weight"`
	OtherWeight    *decimal.Decimal `json:"other_weight"`
}

// TopicService handles topic use-cases. Every write path revalidates the
// weight invariant, so a topic never persists with weights off 100.
type TopicService struct {
	repo      topicRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTopicService constructs the topic service.
func NewTopicService(repo topicRepository, validate *validator.Validate, logger *zap.Logger) *TopicService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TopicService{repo: repo, validator: validate, logger: logger}
}

// List returns the topics of a subject within a period.
func (s *TopicService) List(ctx context.Context, subjectID, periodID int64) ([]models.Topic, error) {
	topics, err := s.repo.List(ctx, subjectID, periodID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list topics")
	}
	return topics, nil
}

// Get returns a topic by ID.
func (s *TopicService) Get(ctx context.Context, id int64) (*models.Topic, error) {
	topic, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "topic not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load topic")
	}
	return topic, nil
}

// Create registers a topic after validating its weights.
func (s *TopicService) Create(ctx context.Context, req CreateTopicRequest) (*models.Topic, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid topic payload")
	}
	if err := grading.ValidateWeights(req.ExamWeight, req.PracticeWeight, req.NotebookWeight, req.OtherWeight); err != nil {
		return nil, err
	}
	topic := &models.Topic{
		Name:           req.Name,
		PeriodID:       req.PeriodID,
		SubjectID:      req.SubjectID,
		ExamWeight:     req.ExamWeight,
		PracticeWeight: req.PracticeWeight,
		NotebookWeight: req.NotebookWeight,
		OtherWeight:    req.OtherWeight,
	}
	if err := s.repo.Create(ctx, topic); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to create topic")
	}
	s.logger.Info("topic created", zap.Int64("topic_id", topic.ID), zap.String("name", topic.Name))
	return topic, nil
}

// Update modifies a topic. Weights supplied in the request are merged over
// the stored ones, and the merged set must still sum to 100; a partial update
// can therefore never sneak the topic into an invalid state.
func (s *TopicService) Update(ctx context.Context, id int64, req UpdateTopicRequest) (*models.Topic, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid topic payload")
	}
	topic, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ExamWeight != nil {
		topic.ExamWeight = *req.ExamWeight
	}
	if req.PracticeWeight != nil {
		topic.PracticeWeight = *req.PracticeWeight
	}
	if req.NotebookWeight != nil {
		topic.NotebookWeight = *req.NotebookWeight
	}
	if req.OtherWeight != nil {
		topic.OtherWeight = *req.OtherWeight
	}
	if err := grading.ValidateWeights(topic.ExamWeight, topic.PracticeWeight, topic.NotebookWeight, topic.OtherWeight); err != nil {
		return nil, err
	}
	topic.Name = req.Name
	if err := s.repo.Update(ctx, topic); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to update topic")
	}
	return topic, nil
}

// Delete removes a topic and its assignments.
func (s *TopicService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete topic")
	}
	return nil
}
