package models

import "github.com/shopspring/decimal"

// Topic is a graded unit of coursework within a subject and period. The four
// category weights must sum to exactly 100 after every successful write.
type Topic struct {
	ID             int64           `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	PeriodID       int64           `db:"period_id" json:"period_id"`
	SubjectID      int64           `db:"subject_id" json:"subject_id"`
	ExamWeight     decimal.Decimal `db:"exam_weight" json:"exam_weight"`
	PracticeWeight decimal.Decimal `db:"practice_weight" json:"practice_weight"`
	NotebookWeight decimal.Decimal `db:"notebook_weight" json:"notebook_weight"`
	OtherWeight    decimal.Decimal `db:"other_weight" json:"other_weight"`
}

// CategoryWeight returns the topic weight assigned to a grading category.
func (t Topic) CategoryWeight(category AssignmentCategory) decimal.Decimal {
	switch category {
	case CategoryExam:
		return t.ExamWeight
	case CategoryPractice:
		return t.PracticeWeight
	case CategoryNotebook:
		return t.NotebookWeight
	case CategoryOther:
		return t.OtherWeight
	default:
		return decimal.Zero
	}
}
