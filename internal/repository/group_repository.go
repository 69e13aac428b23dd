package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// GroupRepository manages persistence for class groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs a GroupRepository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// ListBySubject returns the groups of a subject ordered by grade then name.
func (r *GroupRepository) ListBySubject(ctx context.Context, subjectID int64) ([]models.Group, error) {
	const query = `SELECT id, name, grade, color, subject_id FROM groups
        WHERE subject_id = $1 ORDER BY grade, name`
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, subjectID); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// ListAll returns every group with its subject attached.
func (r *GroupRepository) ListAll(ctx context.Context) ([]models.GroupDetail, error) {
	const query = `SELECT g.id, g.name, g.grade, g.color, g.subject_id, s.name AS subject_name, s.color AS subject_color
        FROM groups g JOIN subjects s ON s.id = g.subject_id
        ORDER BY s.name, g.grade, g.name`
	var groups []models.GroupDetail
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list all groups: %w", err)
	}
	return groups, nil
}

// FindByID fetches a group with its subject attached.
func (r *GroupRepository) FindByID(ctx context.Context, id int64) (*models.GroupDetail, error) {
	const query = `SELECT g.id, g.name, g.grade, g.color, g.subject_id, s.name AS subject_name, s.color AS subject_color
        FROM groups g JOIN subjects s ON s.id = g.subject_id
        WHERE g.id = $1`
	var group models.GroupDetail
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, err
	}
	return &group, nil
}

// ExistsByColor checks for another group using the color. Colors identify
// groups on printed cards, so they are unique across all subjects.
func (r *GroupRepository) ExistsByColor(ctx context.Context, color string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM groups WHERE color = $1"
	args := []interface{}{color}
	if excludeID != 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check group color: %w", err)
	}
	return true, nil
}

// Create inserts a new group and fills in the generated ID.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	const query = `INSERT INTO groups (name, grade, color, subject_id)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, group.Name, group.Grade, group.Color, group.SubjectID).Scan(&group.ID); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// Update modifies an existing group.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	const query = `UPDATE groups SET name = :name, grade = :grade, color = :color WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

// Delete removes a group and its students via FK cascade.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM groups WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}
