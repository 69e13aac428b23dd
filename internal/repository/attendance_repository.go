package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// AttendanceRepository manages the append-only attendance log.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Insert appends an attendance record and fills in the generated ID.
func (r *AttendanceRepository) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `INSERT INTO attendance_records (student_id, subject_id, period_id, timestamp)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		record.StudentID, record.SubjectID, record.PeriodID, record.Timestamp,
	).Scan(&record.ID); err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// FindDetailByID fetches an attendance record with display context attached.
func (r *AttendanceRepository) FindDetailByID(ctx context.Context, id int64) (*models.AttendanceDetail, error) {
	const query = `SELECT ar.id, ar.student_id, ar.subject_id, ar.period_id, ar.timestamp,
        st.first_name AS student_first_name, st.last_name AS student_last_name,
        COALESCE(st.qr_code_id, '') AS student_qr_code_id, st.group_id,
        g.name AS group_name, g.grade AS group_grade, s.name AS subject_name, p.name AS period_name
        FROM attendance_records ar
        JOIN students st ON st.id = ar.student_id
        JOIN groups g ON g.id = st.group_id
        JOIN subjects s ON s.id = ar.subject_id
        JOIN periods p ON p.id = ar.period_id
        WHERE ar.id = $1`
	var detail models.AttendanceDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListByWindow returns the records whose timestamp falls in [from, to),
// newest first.
func (r *AttendanceRepository) ListByWindow(ctx context.Context, from, to time.Time) ([]models.AttendanceDetail, error) {
	const query = `SELECT ar.id, ar.student_id, ar.subject_id, ar.period_id, ar.timestamp,
        st.first_name AS student_first_name, st.last_name AS student_last_name,
        COALESCE(st.qr_code_id, '') AS student_qr_code_id, st.group_id,
        g.name AS group_name, g.grade AS group_grade, s.name AS subject_name, p.name AS period_name
        FROM attendance_records ar
        JOIN students st ON st.id = ar.student_id
        JOIN groups g ON g.id = st.group_id
        JOIN subjects s ON s.id = ar.subject_id
        JOIN periods p ON p.id = ar.period_id
        WHERE ar.timestamp >= $1 AND ar.timestamp < $2
        ORDER BY ar.timestamp DESC`
	var records []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &records, query, from, to); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListByStudent returns a student's attendance history newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceDetail, error) {
	const query = `SELECT ar.id, ar.student_id, ar.subject_id, ar.period_id, ar.timestamp,
        st.first_name AS student_first_name, st.last_name AS student_last_name,
        COALESCE(st.qr_code_id, '') AS student_qr_code_id, st.group_id,
        g.name AS group_name, g.grade AS group_grade, s.name AS subject_name, p.name AS period_name
        FROM attendance_records ar
        JOIN students st ON st.id = ar.student_id
        JOIN groups g ON g.id = st.group_id
        JOIN subjects s ON s.id = ar.subject_id
        JOIN periods p ON p.id = ar.period_id
        WHERE ar.student_id = $1
        ORDER BY ar.timestamp DESC`
	var records []models.AttendanceDetail
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return records, nil
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM attendance_records WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}
