package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	_ "github.com/edugo-labs/aula-api/api/swagger"
	"github.com/edugo-labs/aula-api/internal/handler"
	"github.com/edugo-labs/aula-api/internal/repository"
	"github.com/edugo-labs/aula-api/internal/service"
	"github.com/edugo-labs/aula-api/pkg/cache"
	"github.com/edugo-labs/aula-api/pkg/classroom"
	"github.com/edugo-labs/aula-api/pkg/config"
	"github.com/edugo-labs/aula-api/pkg/database"
	"github.com/edugo-labs/aula-api/pkg/export"
	"github.com/edugo-labs/aula-api/pkg/logger"
	"github.com/edugo-labs/aula-api/pkg/storage"
)

// @title Aula API
// @version 1.0.0
// @description Classroom management backend: subjects, groups, students, grading and QR attendance
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck
	sugar := logr.Sugar()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			sugar.Warnw("redis unavailable, course cache disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	uploads, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		sugar.Fatalw("failed to prepare uploads directory", "error", err)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	teacherRepo := repository.NewTeacherRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	topicGradeRepo := repository.NewTopicGradeRepository(db)
	finalGradeRepo := repository.NewFinalGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	linkRepo := repository.NewClassroomLinkRepository(db)

	authSvc := service.NewAuthService(teacherRepo, cfg.JWT, cfg.Google, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, uploads, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr)
	groupSvc := service.NewGroupService(groupRepo, subjectRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, groupRepo, validate, logr)
	periodSvc := service.NewPeriodService(periodRepo, validate, logr)
	topicSvc := service.NewTopicService(topicRepo, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, topicRepo, validate, logr)
	gradeSvc := service.NewGradeService(gradeRepo, topicGradeRepo, finalGradeRepo, assignmentRepo, topicRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, studentRepo, periodRepo, metrics, validate, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, groupRepo, validate, logr)
	provider := classroom.NewClient(authSvc.TokenSource, logr)
	classroomSvc := service.NewClassroomService(provider, linkRepo, studentRepo, groupRepo, assignmentRepo, redisClient, cfg.Google.CoursesCacheTTL, metrics, logr)
	exportSvc := service.NewExportService(export.NewQRCardRenderer(), studentRepo, groupRepo, metrics, logr)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc, cfg.Google.FrontendURL),
		Teacher:    handler.NewTeacherHandler(teacherSvc),
		Subject:    handler.NewSubjectHandler(subjectSvc, teacherSvc),
		Group:      handler.NewGroupHandler(groupSvc),
		Student:    handler.NewStudentHandler(studentSvc),
		Period:     handler.NewPeriodHandler(periodSvc),
		Topic:      handler.NewTopicHandler(topicSvc),
		Assignment: handler.NewAssignmentHandler(assignmentSvc),
		Grade:      handler.NewGradeHandler(gradeSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Schedule:   handler.NewScheduleHandler(scheduleSvc),
		Classroom:  handler.NewClassroomHandler(classroomSvc, studentSvc),
		Export:     handler.NewExportHandler(exportSvc),
	}

	r := handler.NewRouter(cfg, logr, handlers, authSvc, metrics, uploads.BaseDir())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sugar.Errorw("forced shutdown", "error", err)
	}
}
