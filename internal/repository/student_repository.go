package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListByGroup returns the active students of a group ordered by last name.
func (r *StudentRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.Student, error) {
	const query = `SELECT id, first_name, last_name, qr_code_id, contact_number, status, group_id, classroom_user_id
        FROM students WHERE group_id = $1 AND status = $2 ORDER BY last_name, first_name`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, groupID, models.StudentStatusActive); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student with group and subject context attached.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	const query = `SELECT st.id, st.first_name, st.last_name, st.qr_code_id, st.contact_number, st.status,
        st.group_id, st.classroom_user_id,
        g.name AS group_name, g.grade AS group_grade, g.subject_id, s.name AS subject_name
        FROM students st
        JOIN groups g ON g.id = st.group_id
        JOIN subjects s ON s.id = g.subject_id
        WHERE st.id = $1`
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByQRCode resolves a scanned QR identifier to a student.
func (r *StudentRepository) FindByQRCode(ctx context.Context, qrCodeID string) (*models.StudentDetail, error) {
	const query = `SELECT st.id, st.first_name, st.last_name, st.qr_code_id, st.contact_number, st.status,
        st.group_id, st.classroom_user_id,
        g.name AS group_name, g.grade AS group_grade, g.subject_id, s.name AS subject_name
        FROM students st
        JOIN groups g ON g.id = st.group_id
        JOIN subjects s ON s.id = g.subject_id
        WHERE st.qr_code_id = $1`
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, qrCodeID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ExistsByClassroomUser checks for another student in the group already bound
// to the same Classroom user.
func (r *StudentRepository) ExistsByClassroomUser(ctx context.Context, groupID int64, classroomUserID string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM students WHERE group_id = $1 AND classroom_user_id = $2"
	args := []interface{}{groupID, classroomUserID}
	if excludeID != 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check classroom user: %w", err)
	}
	return true, nil
}

// Create inserts a new student and fills in the generated ID. The QR code is
// derived from the ID afterwards, so it starts out NULL.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (first_name, last_name, contact_number, status, group_id, classroom_user_id)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		student.FirstName, student.LastName, student.ContactNumber,
		student.Status, student.GroupID, student.ClassroomUserID,
	).Scan(&student.ID); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// SetQRCode stores the derived QR identifier for a student.
func (r *StudentRepository) SetQRCode(ctx context.Context, id int64, qrCodeID string) error {
	const query = `UPDATE students SET qr_code_id = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, qrCodeID); err != nil {
		return fmt.Errorf("set qr code: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET first_name = :first_name, last_name = :last_name,
        contact_number = :contact_number, status = :status, classroom_user_id = :classroom_user_id
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student and their grades and attendance via FK cascade.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
