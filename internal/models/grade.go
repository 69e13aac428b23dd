package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grade is one student's result on one assignment, unique per
// (student, assignment) pair.
type Grade struct {
	ID           int64           `db:"id" json:"id"`
	StudentID    int64           `db:"student_id" json:"student_id"`
	AssignmentID int64           `db:"assignment_id" json:"assignment_id"`
	Grade        decimal.Decimal `db:"grade" json:"grade"`
	Notes        *string         `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// GradeDetail carries the owning assignment alongside the grade so the
// aggregator can normalise against max_grade in one fetch.
type GradeDetail struct {
	Grade
	Category AssignmentCategory `db:"category" json:"category"`
	MaxGrade decimal.Decimal    `db:"max_grade" json:"max_grade"`
}

// TopicGrade is the memoized weighted aggregate per (student, topic),
// overwritten whenever a constituent grade changes.
type TopicGrade struct {
	ID              int64           `db:"id" json:"id"`
	StudentID       int64           `db:"student_id" json:"student_id"`
	TopicID         int64           `db:"topic_id" json:"topic_id"`
	CalculatedGrade decimal.Decimal `db:"calculated_grade" json:"calculated_grade"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// FinalGrade holds up to three period grades plus the final-year grade per
// (student, subject).
type FinalGrade struct {
	ID             int64            `db:"id" json:"id"`
	StudentID      int64            `db:"student_id" json:"student_id"`
	SubjectID      int64            `db:"subject_id" json:"subject_id"`
	Period1Grade   *decimal.Decimal `db:"period1_grade" json:"period1_grade"`
	Period2Grade   *decimal.Decimal `db:"period2_grade" json:"period2_grade"`
	Period3Grade   *decimal.Decimal `db:"period3_grade" json:"period3_grade"`
	FinalYearGrade *decimal.Decimal `db:"final_year_grade" json:"final_year_grade"`
}
