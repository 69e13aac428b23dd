package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// TeacherRepository manages persistence for the teacher profile.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Create inserts the teacher profile and fills in the generated ID.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (first_name, last_name, email, profile_photo_url)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, teacher.FirstName, teacher.LastName, teacher.Email, teacher.ProfilePhotoURL).Scan(&teacher.ID); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Find returns the teacher profile, or sql.ErrNoRows when none exists yet.
func (r *TeacherRepository) Find(ctx context.Context) (*models.Teacher, error) {
	const query = `SELECT id, first_name, last_name, email, profile_photo_url, google_credentials,
        google_credentials IS NOT NULL AS google_connected
        FROM teachers ORDER BY id LIMIT 1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Exists reports whether a teacher profile has been created.
func (r *TeacherRepository) Exists(ctx context.Context) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM teachers LIMIT 1"); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher: %w", err)
	}
	return true, nil
}

// Update modifies the teacher profile.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	const query = `UPDATE teachers SET first_name = :first_name, last_name = :last_name, email = :email,
        profile_photo_url = :profile_photo_url WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// SetGoogleCredentials stores the serialized Google token for the teacher.
func (r *TeacherRepository) SetGoogleCredentials(ctx context.Context, id int64, credentials *string) error {
	const query = `UPDATE teachers SET google_credentials = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, credentials); err != nil {
		return fmt.Errorf("set google credentials: %w", err)
	}
	return nil
}
