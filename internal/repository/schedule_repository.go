package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// ScheduleRepository manages the weekly timetable entries.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListByGroup returns a group's timetable ordered by day then start time.
func (r *ScheduleRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.ScheduleEntry, error) {
	const query = `SELECT id, group_id, day_of_week, start_time, end_time
        FROM schedule_entries WHERE group_id = $1 ORDER BY day_of_week, start_time`
	var entries []models.ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, groupID); err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	return entries, nil
}

// ListWeek returns the full weekly timetable across all groups with group and
// subject context attached.
func (r *ScheduleRepository) ListWeek(ctx context.Context) ([]models.ScheduleDetail, error) {
	const query = `SELECT se.id, se.group_id, se.day_of_week, se.start_time, se.end_time,
        g.name AS group_name, g.grade AS group_grade, g.color AS group_color, s.id AS subject_id, s.name AS subject_name
        FROM schedule_entries se
        JOIN groups g ON g.id = se.group_id
        JOIN subjects s ON s.id = g.subject_id
        ORDER BY se.day_of_week, se.start_time, g.name`
	var entries []models.ScheduleDetail
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list week schedule: %w", err)
	}
	return entries, nil
}

// Upsert stores a timetable slot. The (day_of_week, start_time) pair is
// unique across all groups: writing to an occupied slot hands it to the new
// group and adopts the new end time.
func (r *ScheduleRepository) Upsert(ctx context.Context, entry *models.ScheduleEntry) error {
	const query = `INSERT INTO schedule_entries (group_id, day_of_week, start_time, end_time)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (day_of_week, start_time)
        DO UPDATE SET group_id = EXCLUDED.group_id, end_time = EXCLUDED.end_time
        RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		entry.GroupID, entry.DayOfWeek, entry.StartTime, entry.EndTime,
	).Scan(&entry.ID); err != nil {
		return fmt.Errorf("upsert schedule entry: %w", err)
	}
	return nil
}

// Delete removes a timetable slot.
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM schedule_entries WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}
	return nil
}
