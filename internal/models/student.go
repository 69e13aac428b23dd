package models

// StudentStatusActive is the default status applied on creation and roster
// import; status is otherwise free text.
const StudentStatusActive = "active"

// Student belongs to exactly one group. QRCodeID is assigned right after the
// first durable insert, once the numeric id is known, and is unique across
// all students. ClassroomUserID links the row to an external roster entry and
// is unique within a group.
type Student struct {
	ID              int64   `db:"id" json:"id"`
	FirstName       string  `db:"first_name" json:"first_name"`
	LastName        string  `db:"last_name" json:"last_name"`
	QRCodeID        *string `db:"qr_code_id" json:"qr_code_id"`
	ContactNumber   *string `db:"contact_number" json:"contact_number"`
	Status          string  `db:"status" json:"status"`
	GroupID         int64   `db:"group_id" json:"group_id"`
	ClassroomUserID *string `db:"classroom_user_id" json:"classroom_user_id"`
}

// StudentDetail resolves the group and its subject for display.
type StudentDetail struct {
	Student
	GroupName   string `db:"group_name" json:"group_name"`
	GroupGrade  int    `db:"group_grade" json:"group_grade"`
	SubjectID   int64  `db:"subject_id" json:"subject_id"`
	SubjectName string `db:"subject_name" json:"subject_name"`
}
