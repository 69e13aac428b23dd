package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// SubjectRepository manages persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns all subjects for a teacher ordered by name.
func (r *SubjectRepository) List(ctx context.Context, teacherID int64) ([]models.Subject, error) {
	const query = `SELECT id, name, normalized_name, color, teacher_id FROM subjects
        WHERE teacher_id = $1 ORDER BY name`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, teacherID); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches a subject by ID.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	const query = `SELECT id, name, normalized_name, color, teacher_id FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ExistsByNormalizedName checks for another subject with the same folded name.
func (r *SubjectRepository) ExistsByNormalizedName(ctx context.Context, teacherID int64, normalized string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM subjects WHERE teacher_id = $1 AND normalized_name = $2"
	args := []interface{}{teacherID, normalized}
	if excludeID != 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check subject name: %w", err)
	}
	return true, nil
}

// ExistsByColor checks for another subject of the same teacher using the color.
func (r *SubjectRepository) ExistsByColor(ctx context.Context, teacherID int64, color string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM subjects WHERE teacher_id = $1 AND color = $2"
	args := []interface{}{teacherID, color}
	if excludeID != 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check subject color: %w", err)
	}
	return true, nil
}

// Create inserts a new subject and fills in the generated ID.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	const query = `INSERT INTO subjects (name, normalized_name, color, teacher_id)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, subject.Name, subject.NormalizedName, subject.Color, subject.TeacherID).Scan(&subject.ID); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update modifies an existing subject.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	const query = `UPDATE subjects SET name = :name, normalized_name = :normalized_name, color = :color WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Delete removes a subject and everything hanging off it via FK cascade.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM subjects WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}
