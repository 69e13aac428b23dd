package models

import "github.com/shopspring/decimal"

// AssignmentCategory is the grading bucket an assignment belongs to. One
// assignment shape covers all four buckets; the category tag replaces the
// four parallel tables of earlier designs.
type AssignmentCategory string

const (
	CategoryNotebook AssignmentCategory = "notebook"
	CategoryPractice AssignmentCategory = "practice"
	CategoryExam     AssignmentCategory = "exam"
	CategoryOther    AssignmentCategory = "other"
)

// Categories lists every grading bucket in aggregation order.
var Categories = []AssignmentCategory{CategoryExam, CategoryPractice, CategoryNotebook, CategoryOther}

// Valid reports whether the category is one of the four known buckets.
func (c AssignmentCategory) Valid() bool {
	switch c {
	case CategoryNotebook, CategoryPractice, CategoryExam, CategoryOther:
		return true
	}
	return false
}

// Assignment is graded work under a topic. Weight is set for notebook
// assignments only; a topic carries at most one exam assignment. The
// classroom assignment id links the row to external coursework for grade
// retrieval.
type Assignment struct {
	ID                    int64              `db:"id" json:"id"`
	Name                  string             `db:"name" json:"name"`
	Category              AssignmentCategory `db:"category" json:"category"`
	MaxGrade              decimal.Decimal    `db:"max_grade" json:"max_grade"`
	Weight                *decimal.Decimal   `db:"weight" json:"weight,omitempty"`
	TopicID               int64              `db:"topic_id" json:"topic_id"`
	ClassroomAssignmentID *string            `db:"classroom_assignment_id" json:"classroom_assignment_id,omitempty"`
}
