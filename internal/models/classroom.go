package models

// ClassroomLink ties a group to an external Classroom course, 1:1 per group
// and globally unique per course.
type ClassroomLink struct {
	ID       int64  `db:"id" json:"id"`
	GroupID  int64  `db:"group_id" json:"group_id"`
	CourseID string `db:"course_id" json:"course_id"`
}

// ClassroomCourse is a course as reported by the roster provider.
type ClassroomCourse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	EnrollmentCode string `json:"enrollment_code"`
	State          string `json:"state"`
}

// RosterStudent is one external roster entry offered for bulk import.
type RosterStudent struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ClassroomCoursework is external graded work available for linking.
type ClassroomCoursework struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	MaxPoints *float64 `json:"max_points,omitempty"`
}

// ClassroomSubmission is one student's submission grade on external
// coursework; AssignedGrade is nil while ungraded.
type ClassroomSubmission struct {
	UserID        string   `json:"user_id"`
	AssignedGrade *float64 `json:"assigned_grade"`
}
