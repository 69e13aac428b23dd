package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// PeriodRepository manages persistence for grading periods.
type PeriodRepository struct {
	db *sqlx.DB
}

// NewPeriodRepository constructs a PeriodRepository.
func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// List returns all periods ordered by start date.
func (r *PeriodRepository) List(ctx context.Context) ([]models.Period, error) {
	const query = `SELECT id, name, start_date, end_date FROM periods ORDER BY start_date`
	var periods []models.Period
	if err := r.db.SelectContext(ctx, &periods, query); err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}

// FindByID fetches a period by ID.
func (r *PeriodRepository) FindByID(ctx context.Context, id int64) (*models.Period, error) {
	const query = `SELECT id, name, start_date, end_date FROM periods WHERE id = $1`
	var period models.Period
	if err := r.db.GetContext(ctx, &period, query, id); err != nil {
		return nil, err
	}
	return &period, nil
}

// FindByDate returns the period whose date range contains the given moment,
// or sql.ErrNoRows when the date falls outside every period.
func (r *PeriodRepository) FindByDate(ctx context.Context, at time.Time) (*models.Period, error) {
	const query = `SELECT id, name, start_date, end_date FROM periods
        WHERE start_date <= $1 AND end_date >= $1 ORDER BY start_date LIMIT 1`
	var period models.Period
	if err := r.db.GetContext(ctx, &period, query, at); err != nil {
		return nil, err
	}
	return &period, nil
}

// Create inserts a new period and fills in the generated ID.
func (r *PeriodRepository) Create(ctx context.Context, period *models.Period) error {
	const query = `INSERT INTO periods (name, start_date, end_date) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, period.Name, period.StartDate, period.EndDate).Scan(&period.ID); err != nil {
		return fmt.Errorf("create period: %w", err)
	}
	return nil
}

// Update modifies an existing period.
func (r *PeriodRepository) Update(ctx context.Context, period *models.Period) error {
	const query = `UPDATE periods SET name = :name, start_date = :start_date, end_date = :end_date WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, period); err != nil {
		return fmt.Errorf("update period: %w", err)
	}
	return nil
}

// Delete removes a period.
func (r *PeriodRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM periods WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	return nil
}
