package models

// ScheduleEntry is a weekly timetable slot. The (day_of_week, start_time)
// pair is unique; writing to an occupied slot reassigns it.
type ScheduleEntry struct {
	ID        int64  `db:"id" json:"id"`
	GroupID   int64  `db:"group_id" json:"group_id"`
	DayOfWeek int    `db:"day_of_week" json:"day_of_week"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

// ScheduleDetail resolves the group and subject for timetable display.
type ScheduleDetail struct {
	ScheduleEntry
	GroupName    string `db:"group_name" json:"group_name"`
	GroupGrade   int    `db:"group_grade" json:"group_grade"`
	GroupColor   string `db:"group_color" json:"group_color"`
	SubjectID    int64  `db:"subject_id" json:"subject_id"`
	SubjectName  string `db:"subject_name" json:"subject_name"`
}
