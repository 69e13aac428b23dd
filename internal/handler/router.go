package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/middleware"
	"github.com/edugo-labs/aula-api/internal/service"
	"github.com/edugo-labs/aula-api/pkg/config"
	"github.com/edugo-labs/aula-api/pkg/logger"
	corsmiddleware "github.com/edugo-labs/aula-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edugo-labs/aula-api/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Teacher    *TeacherHandler
	Subject    *SubjectHandler
	Group      *GroupHandler
	Student    *StudentHandler
	Period     *PeriodHandler
	Topic      *TopicHandler
	Assignment *AssignmentHandler
	Grade      *GradeHandler
	Attendance *AttendanceHandler
	Schedule   *ScheduleHandler
	Classroom  *ClassroomHandler
	Export     *ExportHandler
}

// NewRouter assembles the gin engine: middleware chain, public routes and the
// JWT-protected API group.
func NewRouter(cfg *config.Config, logr *zap.Logger, h Handlers, auth *service.AuthService, metrics *service.MetricsService, uploadsDir string) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}

	api := r.Group(cfg.APIPrefix)

	// Public: profile bootstrap, session issuing and the OAuth callback
	// (Google redirects here without a bearer token).
	api.POST("/teacher", h.Teacher.Create)
	api.POST("/auth/session", h.Auth.CreateSession)
	api.GET("/auth/google/callback", h.Auth.GoogleCallback)

	authorized := api.Group("", middleware.JWT(auth))

	authorized.GET("/teacher", h.Teacher.Get)
	authorized.PUT("/teacher", h.Teacher.Update)
	authorized.PUT("/teacher/photo", h.Teacher.SetPhoto)
	authorized.GET("/auth/google/url", h.Auth.GoogleAuthURL)
	authorized.DELETE("/auth/google", h.Auth.GoogleDisconnect)

	authorized.GET("/subjects", h.Subject.List)
	authorized.POST("/subjects", h.Subject.Create)
	authorized.GET("/subjects/:id", h.Subject.Get)
	authorized.PUT("/subjects/:id", h.Subject.Update)
	authorized.DELETE("/subjects/:id", h.Subject.Delete)
	authorized.GET("/subjects/:id/groups", h.Group.ListBySubject)
	authorized.GET("/subjects/:id/final-grades", h.Grade.FinalGradesBySubject)

	authorized.GET("/groups", h.Group.List)
	authorized.POST("/groups", h.Group.Create)
	authorized.GET("/groups/:id", h.Group.Get)
	authorized.PUT("/groups/:id", h.Group.Update)
	authorized.DELETE("/groups/:id", h.Group.Delete)
	authorized.GET("/groups/:id/students", h.Student.ListByGroup)
	authorized.GET("/groups/:id/schedule", h.Schedule.ListByGroup)
	authorized.PUT("/groups/:id/schedule", h.Schedule.Place)
	authorized.GET("/groups/:id/qr-cards.pdf", h.Export.GroupQRCards)
	authorized.PUT("/groups/:id/classroom", h.Classroom.LinkCourse)
	authorized.DELETE("/groups/:id/classroom", h.Classroom.UnlinkCourse)
	authorized.POST("/groups/:id/classroom/import", h.Classroom.ImportRoster)
	authorized.GET("/groups/:id/classroom/coursework", h.Classroom.Coursework)
	authorized.GET("/groups/:id/classroom/students/:studentId/gradebook", h.Classroom.Gradebook)
	authorized.GET("/groups/:id/classroom/topics/:topicId/gradebook", h.Classroom.TopicGradebook)

	authorized.POST("/students", h.Student.Create)
	authorized.GET("/students/:id", h.Student.Get)
	authorized.PUT("/students/:id", h.Student.Update)
	authorized.DELETE("/students/:id", h.Student.Delete)
	authorized.GET("/students/:id/attendance", h.Attendance.ByStudent)
	authorized.GET("/students/:id/topics/:topicId/grade", h.Grade.TopicGrade)
	authorized.POST("/students/:id/topics/:topicId/grade/recompute", h.Grade.RecomputeTopicGrade)
	authorized.GET("/students/:id/average", h.Grade.PeriodAverage)
	authorized.GET("/students/:id/subjects/:subjectId/final-grade", h.Grade.FinalGrade)

	authorized.GET("/periods", h.Period.List)
	authorized.POST("/periods", h.Period.Create)
	authorized.GET("/periods/current", h.Period.Current)
	authorized.GET("/periods/:id", h.Period.Get)
	authorized.PUT("/periods/:id", h.Period.Update)
	authorized.DELETE("/periods/:id", h.Period.Delete)

	authorized.GET("/topics", h.Topic.List)
	authorized.POST("/topics", h.Topic.Create)
	authorized.GET("/topics/:id", h.Topic.Get)
	authorized.PUT("/topics/:id", h.Topic.Update)
	authorized.DELETE("/topics/:id", h.Topic.Delete)
	authorized.GET("/topics/:id/assignments", h.Assignment.ListByTopic)
	authorized.POST("/topics/:id/assignments", h.Assignment.Create)

	authorized.GET("/assignments/:id", h.Assignment.Get)
	authorized.PUT("/assignments/:id", h.Assignment.Update)
	authorized.DELETE("/assignments/:id", h.Assignment.Delete)
	authorized.GET("/assignments/:id/grades", h.Grade.ListByAssignment)

	authorized.POST("/grades", h.Grade.Record)
	authorized.DELETE("/grades/:id", h.Grade.Delete)
	authorized.PUT("/grades/final", h.Grade.SaveFinalGrade)

	authorized.POST("/attendance/scan", h.Attendance.Scan)
	authorized.GET("/attendance/today", h.Attendance.Today)
	authorized.GET("/attendance", h.Attendance.ByDate)
	authorized.DELETE("/attendance/:id", h.Attendance.Delete)

	authorized.GET("/schedule", h.Schedule.Week)
	authorized.DELETE("/schedule/:id", h.Schedule.Remove)

	authorized.GET("/classroom/courses", h.Classroom.Courses)

	return r
}
