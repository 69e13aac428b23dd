package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// TopicRepository manages persistence for topics and their category weights.
type TopicRepository struct {
	db *sqlx.DB
}

// NewTopicRepository constructs a TopicRepository.
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// List returns the topics of a subject within a period ordered by name.
func (r *TopicRepository) List(ctx context.Context, subjectID, periodID int64) ([]models.Topic, error) {
	const query = `SELECT id, name, period_id, subject_id, exam_weight, practice_weight, notebook_weight, other_weight
        FROM topics WHERE subject_id = $1 AND period_id = $2 ORDER BY name`
	var topics []models.Topic
	if err := r.db.SelectContext(ctx, &topics, query, subjectID, periodID); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// ListBySubject returns every topic of a subject across all periods.
func (r *TopicRepository) ListBySubject(ctx context.Context, subjectID int64) ([]models.Topic, error) {
	const query = `SELECT id, name, period_id, subject_id, exam_weight, practice_weight, notebook_weight, other_weight
        FROM topics WHERE subject_id = $1 ORDER BY period_id, name`
	var topics []models.Topic
	if err := r.db.SelectContext(ctx, &topics, query, subjectID); err != nil {
		return nil, fmt.Errorf("list subject topics: %w", err)
	}
	return topics, nil
}

// FindByID fetches a topic by ID.
func (r *TopicRepository) FindByID(ctx context.Context, id int64) (*models.Topic, error) {
	const query = `SELECT id, name, period_id, subject_id, exam_weight, practice_weight, notebook_weight, other_weight
        FROM topics WHERE id = $1`
	var topic models.Topic
	if err := r.db.GetContext(ctx, &topic, query, id); err != nil {
		return nil, err
	}
	return &topic, nil
}

// Create inserts a new topic and fills in the generated ID.
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	const query = `INSERT INTO topics (name, period_id, subject_id, exam_weight, practice_weight, notebook_weight, other_weight)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		topic.Name, topic.PeriodID, topic.SubjectID,
		topic.ExamWeight, topic.PracticeWeight, topic.NotebookWeight, topic.OtherWeight,
	).Scan(&topic.ID); err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

// Update modifies an existing topic.
func (r *TopicRepository) Update(ctx context.Context, topic *models.Topic) error {
	const query = `UPDATE topics SET name = :name, exam_weight = :exam_weight, practice_weight = :practice_weight,
        notebook_weight = :notebook_weight, other_weight = :other_weight WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, topic); err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	return nil
}

// Delete removes a topic and its assignments via FK cascade.
func (r *TopicRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM topics WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}
	return nil
}
