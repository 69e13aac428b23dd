package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edugo-labs/aula-api/internal/models"
)

// FinalGradeRepository manages the per-subject final grade sheet.
type FinalGradeRepository struct {
	db *sqlx.DB
}

// NewFinalGradeRepository constructs a FinalGradeRepository.
func NewFinalGradeRepository(db *sqlx.DB) *FinalGradeRepository {
	return &FinalGradeRepository{db: db}
}

// Upsert stores the period and year grades for a student in a subject.
func (r *FinalGradeRepository) Upsert(ctx context.Context, grade *models.FinalGrade) error {
	const query = `INSERT INTO final_grades (student_id, subject_id, period1_grade, period2_grade, period3_grade, final_year_grade)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (student_id, subject_id)
        DO UPDATE SET period1_grade = EXCLUDED.period1_grade, period2_grade = EXCLUDED.period2_grade,
            period3_grade = EXCLUDED.period3_grade, final_year_grade = EXCLUDED.final_year_grade
        RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		grade.StudentID, grade.SubjectID,
		grade.Period1Grade, grade.Period2Grade, grade.Period3Grade, grade.FinalYearGrade,
	).Scan(&grade.ID); err != nil {
		return fmt.Errorf("upsert final grade: %w", err)
	}
	return nil
}

// Find returns the final grade row for a student in a subject, or sql.ErrNoRows.
func (r *FinalGradeRepository) Find(ctx context.Context, studentID, subjectID int64) (*models.FinalGrade, error) {
	const query = `SELECT id, student_id, subject_id, period1_grade, period2_grade, period3_grade, final_year_grade
        FROM final_grades WHERE student_id = $1 AND subject_id = $2`
	var grade models.FinalGrade
	if err := r.db.GetContext(ctx, &grade, query, studentID, subjectID); err != nil {
		return nil, err
	}
	return &grade, nil
}

// ListBySubject returns the final grade sheet of a subject ordered by student.
func (r *FinalGradeRepository) ListBySubject(ctx context.Context, subjectID int64) ([]models.FinalGrade, error) {
	const query = `SELECT id, student_id, subject_id, period1_grade, period2_grade, period3_grade, final_year_grade
        FROM final_grades WHERE subject_id = $1 ORDER BY student_id`
	var grades []models.FinalGrade
	if err := r.db.SelectContext(ctx, &grades, query, subjectID); err != nil {
		return nil, fmt.Errorf("list final grades: %w", err)
	}
	return grades, nil
}
