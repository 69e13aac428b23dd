package models

// Subject is a course taught by the teacher. Name uniqueness is decided on
// the normalized form; the display form is kept as entered.
type Subject struct {
	ID             int64  `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	NormalizedName string `db:"normalized_name" json:"-"`
	Color          string `db:"color" json:"color"`
	TeacherID      int64  `db:"teacher_id" json:"teacher_id"`
}

// Group is a class section within a subject: a single-letter name plus the
// school grade, e.g. grade 3 group "B".
type Group struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Grade     int    `db:"grade" json:"grade"`
	Color     string `db:"color" json:"color"`
	SubjectID int64  `db:"subject_id" json:"subject_id"`
}

// GroupDetail resolves the owning subject for display.
type GroupDetail struct {
	Group
	SubjectName  string `db:"subject_name" json:"subject_name"`
	SubjectColor string `db:"subject_color" json:"subject_color"`
}
