package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// ClassroomLinkRepository manages group-to-Classroom-course bindings.
type ClassroomLinkRepository struct {
	db *sqlx.DB
}

// NewClassroomLinkRepository constructs a ClassroomLinkRepository.
func NewClassroomLinkRepository(db *sqlx.DB) *ClassroomLinkRepository {
	return &ClassroomLinkRepository{db: db}
}

// FindByGroup returns the course linked to a group, or sql.ErrNoRows.
func (r *ClassroomLinkRepository) FindByGroup(ctx context.Context, groupID int64) (*models.ClassroomLink, error) {
	const query = `SELECT id, group_id, course_id FROM classroom_links WHERE group_id = $1`
	var link models.ClassroomLink
	if err := r.db.GetContext(ctx, &link, query, groupID); err != nil {
		return nil, err
	}
	return &link, nil
}

// ExistsByCourseID checks whether the course is already linked to any group,
// optionally excluding one group.
func (r *ClassroomLinkRepository) ExistsByCourseID(ctx context.Context, courseID string, excludeGroupID int64) (bool, error) {
	query := "SELECT 1 FROM classroom_links WHERE course_id = $1"
	args := []interface{}{courseID}
	if excludeGroupID != 0 {
		query += " AND group_id <> $2"
		args = append(args, excludeGroupID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course link: %w", err)
	}
	return true, nil
}

// Upsert binds a group to a course, replacing any previous binding.
func (r *ClassroomLinkRepository) Upsert(ctx context.Context, link *models.ClassroomLink) error {
	const query = `INSERT INTO classroom_links (group_id, course_id)
        VALUES ($1, $2)
        ON CONFLICT (group_id) DO UPDATE SET course_id = EXCLUDED.course_id
        RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, link.GroupID, link.CourseID).Scan(&link.ID); err != nil {
		return fmt.Errorf("upsert classroom link: %w", err)
	}
	return nil
}

// Delete removes the course binding of a group.
func (r *ClassroomLinkRepository) Delete(ctx context.Context, groupID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM classroom_links WHERE group_id = $1", groupID); err != nil {
		return fmt.Errorf("delete classroom link: %w", err)
	}
	return nil
}
