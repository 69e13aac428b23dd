package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/edugo-labs/aula-api/internal/models"
)

// TopicGradeRepository manages the cached per-topic grade rollups.
type TopicGradeRepository struct {
	db *sqlx.DB
}

// NewTopicGradeRepository constructs a TopicGradeRepository.
func NewTopicGradeRepository(db *sqlx.DB) *TopicGradeRepository {
	return &TopicGradeRepository{db: db}
}

// Upsert stores a recomputed topic grade for a student.
func (r *TopicGradeRepository) Upsert(ctx context.Context, studentID, topicID int64, calculated decimal.Decimal) error {
	const query = `INSERT INTO topic_grades (student_id, topic_id, calculated_grade, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (student_id, topic_id)
        DO UPDATE SET calculated_grade = EXCLUDED.calculated_grade, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, studentID, topicID, calculated, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert topic grade: %w", err)
	}
	return nil
}

// Find returns the stored topic grade for a student, or sql.ErrNoRows.
func (r *TopicGradeRepository) Find(ctx context.Context, studentID, topicID int64) (*models.TopicGrade, error) {
	const query = `SELECT id, student_id, topic_id, calculated_grade, updated_at
        FROM topic_grades WHERE student_id = $1 AND topic_id = $2`
	var grade models.TopicGrade
	if err := r.db.GetContext(ctx, &grade, query, studentID, topicID); err != nil {
		return nil, err
	}
	return &grade, nil
}

// ListByTopic returns every stored rollup for a topic keyed by student.
func (r *TopicGradeRepository) ListByTopic(ctx context.Context, topicID int64) ([]models.TopicGrade, error) {
	const query = `SELECT id, student_id, topic_id, calculated_grade, updated_at
        FROM topic_grades WHERE topic_id = $1 ORDER BY student_id`
	var grades []models.TopicGrade
	if err := r.db.SelectContext(ctx, &grades, query, topicID); err != nil {
		return nil, fmt.Errorf("list topic grades: %w", err)
	}
	return grades, nil
}

// ListByStudentPeriod returns a student's rollups for every topic of a
// subject within a period. Used when assembling period averages.
func (r *TopicGradeRepository) ListByStudentPeriod(ctx context.Context, studentID, subjectID, periodID int64) ([]models.TopicGrade, error) {
	const query = `SELECT tg.id, tg.student_id, tg.topic_id, tg.calculated_grade, tg.updated_at
        FROM topic_grades tg JOIN topics t ON t.id = tg.topic_id
        WHERE tg.student_id = $1 AND t.subject_id = $2 AND t.period_id = $3`
	var grades []models.TopicGrade
	if err := r.db.SelectContext(ctx, &grades, query, studentID, subjectID, periodID); err != nil {
		return nil, fmt.Errorf("list period topic grades: %w", err)
	}
	return grades, nil
}
