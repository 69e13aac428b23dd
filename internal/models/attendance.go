package models

import "time"

// AttendanceRecord is an append-only check-in event. The subject is captured
// at creation time from the student's group and never re-derived.
type AttendanceRecord struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	SubjectID int64     `db:"subject_id" json:"subject_id"`
	PeriodID  int64     `db:"period_id" json:"period_id"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// AttendanceDetail is the eager-loaded read shape: student, group, subject
// and period resolved in one row.
type AttendanceDetail struct {
	AttendanceRecord
	StudentFirstName string `db:"student_first_name" json:"student_first_name"`
	StudentLastName  string `db:"student_last_name" json:"student_last_name"`
	StudentQRCodeID  string `db:"student_qr_code_id" json:"student_qr_code_id"`
	GroupID          int64  `db:"group_id" json:"group_id"`
	GroupName        string `db:"group_name" json:"group_name"`
	GroupGrade       int    `db:"group_grade" json:"group_grade"`
	SubjectName      string `db:"subject_name" json:"subject_name"`
	PeriodName       string `db:"period_name" json:"period_name"`
}
