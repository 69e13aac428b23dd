package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// GradeRepository manages persistence for recorded grades.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// ListByAssignment returns the grades recorded for an assignment.
func (r *GradeRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Grade, error) {
	const query = `SELECT id, student_id, assignment_id, grade, notes, created_at, updated_at
        FROM grades WHERE assignment_id = $1 ORDER BY student_id`
	var grades []models.Grade
	if err := r.db.SelectContext(ctx, &grades, query, assignmentID); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// FetchDetailsByStudentTopic returns a student's recorded grades within a
// topic, carrying the category and max grade needed for aggregation.
func (r *GradeRepository) FetchDetailsByStudentTopic(ctx context.Context, studentID, topicID int64) ([]models.GradeDetail, error) {
	const query = `SELECT gr.id, gr.student_id, gr.assignment_id, gr.grade, gr.notes, gr.created_at, gr.updated_at,
        a.category, a.max_grade
        FROM grades gr JOIN assignments a ON a.id = gr.assignment_id
        WHERE gr.student_id = $1 AND a.topic_id = $2`
	var details []models.GradeDetail
	if err := r.db.SelectContext(ctx, &details, query, studentID, topicID); err != nil {
		return nil, fmt.Errorf("fetch topic grades: %w", err)
	}
	return details, nil
}

// Upsert records a grade, replacing any previous value for the same student
// and assignment pair.
func (r *GradeRepository) Upsert(ctx context.Context, grade *models.Grade) error {
	now := time.Now().UTC()
	if grade.CreatedAt.IsZero() {
		grade.CreatedAt = now
	}
	grade.UpdatedAt = now
	const query = `INSERT INTO grades (student_id, assignment_id, grade, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (student_id, assignment_id)
        DO UPDATE SET grade = EXCLUDED.grade, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at
        RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		grade.StudentID, grade.AssignmentID, grade.Grade, grade.Notes, grade.CreatedAt, grade.UpdatedAt,
	).Scan(&grade.ID); err != nil {
		return fmt.Errorf("upsert grade: %w", err)
	}
	return nil
}

// FindByID fetches a grade by ID.
func (r *GradeRepository) FindByID(ctx context.Context, id int64) (*models.Grade, error) {
	const query = `SELECT id, student_id, assignment_id, grade, notes, created_at, updated_at FROM grades WHERE id = $1`
	var grade models.Grade
	if err := r.db.GetContext(ctx, &grade, query, id); err != nil {
		return nil, err
	}
	return &grade, nil
}

// Delete removes a recorded grade.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM grades WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	return nil
}
