package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// AssignmentRepository manages persistence for graded assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListByTopic returns the assignments of a topic ordered by category then name.
func (r *AssignmentRepository) ListByTopic(ctx context.Context, topicID int64) ([]models.Assignment, error) {
	const query = `SELECT id, name, category, max_grade, weight, topic_id, classroom_assignment_id
        FROM assignments WHERE topic_id = $1 ORDER BY category, name`
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, topicID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// FindByID fetches an assignment by ID.
func (r *AssignmentRepository) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	const query = `SELECT id, name, category, max_grade, weight, topic_id, classroom_assignment_id
        FROM assignments WHERE id = $1`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ExistsByCategory checks whether the topic already carries an assignment in
// the category, optionally excluding an ID. Used to keep exams one-per-topic.
func (r *AssignmentRepository) ExistsByCategory(ctx context.Context, topicID int64, category models.AssignmentCategory, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM assignments WHERE topic_id = $1 AND category = $2"
	args := []interface{}{topicID, category}
	if excludeID != 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check assignment category: %w", err)
	}
	return true, nil
}

// ExistsByClassroomAssignment checks whether Classroom coursework is already
// linked to an assignment of the topic.
func (r *AssignmentRepository) ExistsByClassroomAssignment(ctx context.Context, topicID int64, classroomAssignmentID string) (bool, error) {
	const query = `SELECT 1 FROM assignments WHERE topic_id = $1 AND classroom_assignment_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, topicID, classroomAssignmentID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check classroom assignment: %w", err)
	}
	return true, nil
}

// Create inserts a new assignment and fills in the generated ID.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	const query = `INSERT INTO assignments (name, category, max_grade, weight, topic_id, classroom_assignment_id)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		assignment.Name, assignment.Category, assignment.MaxGrade,
		assignment.Weight, assignment.TopicID, assignment.ClassroomAssignmentID,
	).Scan(&assignment.ID); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Update modifies an existing assignment.
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	const query = `UPDATE assignments SET name = :name, category = :category, max_grade = :max_grade,
        weight = :weight, classroom_assignment_id = :classroom_assignment_id WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment and its grades via FK cascade.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM assignments WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}
