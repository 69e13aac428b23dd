package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Aula API",
        "description": "Classroom management backend: subjects, groups, students, grading and QR attendance",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Session tokens and Google account linking"},
        {"name": "Teacher", "description": "Teacher profile"},
        {"name": "Subjects", "description": "Subjects taught by the teacher"},
        {"name": "Groups", "description": "Class groups within a subject"},
        {"name": "Students", "description": "Group rosters and QR identity"},
        {"name": "Periods", "description": "Grading periods"},
        {"name": "Topics", "description": "Topics and their category weights"},
        {"name": "Assignments", "description": "Gradeable work within a topic"},
        {"name": "Grades", "description": "Grades, topic rollups and final sheets"},
        {"name": "Attendance", "description": "QR scan log"},
        {"name": "Schedule", "description": "Weekly schedule slots"},
        {"name": "Classroom", "description": "Google Classroom sync"},
        {"name": "Export", "description": "Printable documents"}
    ],
    "paths": {
        "/teacher": {
            "get": {
                "tags": ["Teacher"],
                "summary": "Get the teacher profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Profile not created yet"}
                }
            },
            "post": {
                "tags": ["Teacher"],
                "summary": "Create the teacher profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Profile already exists"}
                }
            },
            "put": {
                "tags": ["Teacher"],
                "summary": "Update the teacher profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TeacherRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/photo": {
            "put": {
                "tags": ["Teacher"],
                "summary": "Upload the profile photo",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "photo", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/session": {
            "post": {
                "tags": ["Auth"],
                "summary": "Issue a session token for the teacher",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/google/url": {
            "get": {
                "tags": ["Auth"],
                "summary": "Get the Google consent URL",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/google/callback": {
            "get": {
                "tags": ["Auth"],
                "summary": "OAuth redirect target",
                "parameters": [
                    {"name": "state", "in": "query", "type": "string", "required": true},
                    {"name": "code", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Credentials stored"},
                    "302": {"description": "Redirect back to the frontend"}
                }
            }
        },
        "/auth/google": {
            "delete": {
                "tags": ["Auth"],
                "summary": "Disconnect the Google account",
                "responses": {
                    "204": {"description": "Disconnected"}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Name or color already in use"}
                }
            }
        },
        "/subjects/{id}": {
            "get": {"tags": ["Subjects"], "summary": "Get subject", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Subjects"], "summary": "Update subject", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Subjects"], "summary": "Delete subject and everything under it", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/subjects/{id}/groups": {
            "get": {"tags": ["Groups"], "summary": "List the groups of a subject", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/subjects/{id}/final-grades": {
            "get": {"tags": ["Grades"], "summary": "List final grade sheets for a subject", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/groups": {
            "get": {"tags": ["Groups"], "summary": "List all groups", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Groups"],
                "summary": "Create group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateGroupRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/groups/{id}": {
            "get": {"tags": ["Groups"], "summary": "Get group", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Groups"], "summary": "Update group", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Groups"], "summary": "Delete group", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/groups/{id}/students": {
            "get": {"tags": ["Students"], "summary": "List the active students of a group", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/groups/{id}/schedule": {
            "get": {"tags": ["Schedule"], "summary": "List a group's schedule entries", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {
                "tags": ["Schedule"],
                "summary": "Place or replace a schedule slot",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleEntryRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/groups/{id}/qr-cards.pdf": {
            "get": {
                "tags": ["Export"],
                "summary": "Download the printable QR card sheet",
                "produces": ["application/pdf"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "PDF document"},
                    "422": {"description": "No student in the group has a QR code"}
                }
            }
        },
        "/groups/{id}/classroom": {
            "put": {
                "tags": ["Classroom"],
                "summary": "Link the group to a course",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LinkCourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "Linked"},
                    "409": {"description": "Course already linked to another group"}
                }
            },
            "delete": {"tags": ["Classroom"], "summary": "Unlink the group", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Unlinked"}}}
        },
        "/groups/{id}/classroom/import": {
            "post": {"tags": ["Classroom"], "summary": "Import the course roster into the group", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "Imported/skipped counts"}}}
        },
        "/groups/{id}/classroom/coursework": {
            "get": {"tags": ["Classroom"], "summary": "List the linked course's coursework", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/groups/{id}/classroom/students/{studentId}/gradebook": {
            "get": {
                "tags": ["Classroom"],
                "summary": "Get a student's grades from the linked course",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "studentId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/groups/{id}/classroom/topics/{topicId}/gradebook": {
            "get": {
                "tags": ["Classroom"],
                "summary": "Pull submissions for a topic's linked assignments",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "topicId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Register a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {"201": {"description": "Created with derived QR code"}}
            }
        },
        "/students/{id}": {
            "get": {"tags": ["Students"], "summary": "Get student", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Students"], "summary": "Update student (QR code is kept)", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Students"], "summary": "Delete student", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/students/{id}/attendance": {
            "get": {"tags": ["Attendance"], "summary": "List a student's attendance history", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/students/{id}/topics/{topicId}/grade": {
            "get": {
                "tags": ["Grades"],
                "summary": "Get a student's weighted topic rollup",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "topicId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/students/{id}/topics/{topicId}/grade/recompute": {
            "post": {
                "tags": ["Grades"],
                "summary": "Recompute the topic rollup from recorded grades",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "topicId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/students/{id}/average": {
            "get": {
                "tags": ["Grades"],
                "summary": "Average across a subject's topics in a period",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "subject_id", "in": "query", "type": "integer", "required": true},
                    {"name": "period_id", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/students/{id}/subjects/{subjectId}/final-grade": {
            "get": {
                "tags": ["Grades"],
                "summary": "Get a student's final grade sheet for a subject",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "subjectId", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/periods": {
            "get": {"tags": ["Periods"], "summary": "List grading periods", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Periods"],
                "summary": "Create grading period",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PeriodRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/periods/current": {
            "get": {
                "tags": ["Periods"],
                "summary": "Get the period covering today",
                "responses": {
                    "200": {"description": "OK"},
                    "422": {"description": "No period covers today"}
                }
            }
        },
        "/periods/{id}": {
            "get": {"tags": ["Periods"], "summary": "Get period", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Periods"], "summary": "Update period", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Periods"], "summary": "Delete period", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/topics": {
            "get": {
                "tags": ["Topics"],
                "summary": "List topics for a subject within a period",
                "parameters": [
                    {"name": "subject_id", "in": "query", "type": "integer", "required": true},
                    {"name": "period_id", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Topics"],
                "summary": "Create topic with category weights",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTopicRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "Weights do not sum to 100"}
                }
            }
        },
        "/topics/{id}": {
            "get": {"tags": ["Topics"], "summary": "Get topic", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Topics"], "summary": "Update topic name or weights", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Topics"], "summary": "Delete topic", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/topics/{id}/assignments": {
            "get": {"tags": ["Assignments"], "summary": "List the assignments of a topic", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Assignments"],
                "summary": "Add an assignment",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Topic already has an exam"}
                }
            }
        },
        "/assignments/{id}": {
            "get": {"tags": ["Assignments"], "summary": "Get assignment", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Assignments"], "summary": "Update assignment", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Assignments"], "summary": "Delete assignment", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/assignments/{id}/grades": {
            "get": {"tags": ["Grades"], "summary": "List the grades recorded for an assignment", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/grades": {
            "post": {
                "tags": ["Grades"],
                "summary": "Record or replace a grade",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordGradeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Recorded, rollup recomputed"},
                    "422": {"description": "Grade out of range"}
                }
            }
        },
        "/grades/{id}": {
            "delete": {"tags": ["Grades"], "summary": "Delete a grade and recompute its rollup", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/grades/final": {
            "put": {
                "tags": ["Grades"],
                "summary": "Save a final grade sheet",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FinalGradeRequest"}}
                ],
                "responses": {"200": {"description": "Saved"}}
            }
        },
        "/attendance/scan": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Record an attendance scan",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScanRequest"}}
                ],
                "responses": {
                    "201": {"description": "Recorded"},
                    "404": {"description": "Unknown QR code"},
                    "422": {"description": "Inactive student or no current period"}
                }
            }
        },
        "/attendance/today": {
            "get": {"tags": ["Attendance"], "summary": "List today's scans", "responses": {"200": {"description": "OK"}}}
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List the scans of a day",
                "parameters": [{"name": "date", "in": "query", "type": "string", "required": true, "description": "YYYY-MM-DD"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/attendance/{id}": {
            "delete": {"tags": ["Attendance"], "summary": "Delete an attendance record", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/schedule": {
            "get": {"tags": ["Schedule"], "summary": "Get the full weekly schedule", "responses": {"200": {"description": "OK"}}}
        },
        "/schedule/{id}": {
            "delete": {"tags": ["Schedule"], "summary": "Remove a schedule entry", "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}], "responses": {"204": {"description": "Removed"}}}
        },
        "/classroom/courses": {
            "get": {"tags": ["Classroom"], "summary": "List the teacher's active courses", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "TeacherRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "school_name": {"type": "string"}
            },
            "required": ["first_name", "last_name", "email"]
        },
        "CreateSubjectRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "color": {"type": "string", "example": "#FF5722"}
            },
            "required": ["name", "color"]
        },
        "CreateGroupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "grade": {"type": "integer", "minimum": 1, "maximum": 12},
                "color": {"type": "string"},
                "subject_id": {"type": "integer"}
            },
            "required": ["name", "grade", "color", "subject_id"]
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "group_id": {"type": "integer"},
                "classroom_user_id": {"type": "string"}
            },
            "required": ["first_name", "last_name", "group_id"]
        },
        "PeriodRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"}
            },
            "required": ["name", "start_date", "end_date"]
        },
        "CreateTopicRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "subject_id": {"type": "integer"},
                "period_id": {"type": "integer"},
                "exam_weight": {"type": "number"},
                "practice_weight": {"type": "number"},
                "notebook_weight": {"type": "number"},
                "other_weight": {"type": "number"}
            },
            "required": ["name", "subject_id", "period_id"]
        },
        "AssignmentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string", "enum": ["exam", "practice", "notebook", "other"]},
                "max_grade": {"type": "number"},
                "weight": {"type": "number"},
                "classroom_assignment_id": {"type": "string"}
            },
            "required": ["name", "category", "max_grade"]
        },
        "RecordGradeRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "integer"},
                "assignment_id": {"type": "integer"},
                "grade": {"type": "number"},
                "notes": {"type": "string"}
            },
            "required": ["student_id", "assignment_id", "grade"]
        },
        "FinalGradeRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "integer"},
                "subject_id": {"type": "integer"},
                "period1_grade": {"type": "number"},
                "period2_grade": {"type": "number"},
                "period3_grade": {"type": "number"},
                "final_year_grade": {"type": "number"}
            },
            "required": ["student_id", "subject_id"]
        },
        "ScanRequest": {
            "type": "object",
            "properties": {
                "qr_code_id": {"type": "string", "example": "AGP7"},
                "period_id": {"type": "integer", "example": 1}
            },
            "required": ["qr_code_id"]
        },
        "ScheduleEntryRequest": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "integer", "minimum": 0, "maximum": 6},
                "start_time": {"type": "string", "example": "08:30"},
                "end_time": {"type": "string", "example": "09:20"}
            },
            "required": ["day_of_week", "start_time", "end_time"]
        },
        "LinkCourseRequest": {
            "type": "object",
            "properties": {
                "course_id": {"type": "string"}
            },
            "required": ["course_id"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
