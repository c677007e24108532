package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sahil8130/E-Learning/internal/app/server"
	"github.com/Sahil8130/E-Learning/internal/config"
	httpdelivery "github.com/Sahil8130/E-Learning/internal/delivery/http"
	service "github.com/Sahil8130/E-Learning/internal/service"
	"github.com/Sahil8130/E-Learning/internal/service/access"
	"github.com/Sahil8130/E-Learning/internal/service/auth"
	"github.com/Sahil8130/E-Learning/internal/service/course"
	"github.com/Sahil8130/E-Learning/internal/service/enrollment"
	"github.com/Sahil8130/E-Learning/internal/service/lecture"
	"github.com/Sahil8130/E-Learning/internal/service/progress"
	"github.com/Sahil8130/E-Learning/internal/service/quiz"
	"github.com/Sahil8130/E-Learning/internal/storage/elastic"
	"github.com/Sahil8130/E-Learning/internal/storage/minio_storage"
	"github.com/Sahil8130/E-Learning/internal/storage/postgres"
	"github.com/Sahil8130/E-Learning/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error creating search index", err)
	}

	minioStorage, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	fileStorage, err := minio_storage.NewLectureFileStorage(minioStorage, cfg.Minio.Bucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing lecture file bucket", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	lectureRepo := postgres.NewLecturePostgres(pg.Pool)
	enrollmentRepo := postgres.NewEnrollmentPostgres(pg.Pool)
	progressRepo := postgres.NewProgressPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "e-learning", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewAuthService(log, jwtManager, userRepo, tokenRepo)
	courseService := course.NewService(log, courseRepo, searchRepo)
	lectureService := lecture.NewService(log, lectureRepo, courseRepo, fileStorage)
	enrollmentService := enrollment.NewService(log, enrollmentRepo, courseRepo)
	progressService := progress.NewService(log, progressRepo, courseRepo, enrollmentRepo)
	accessService := access.NewService(log, lectureRepo, enrollmentRepo, progressService)
	quizService := quiz.NewService(log, lectureRepo, enrollmentRepo, progressService)

	u := service.Collection{
		AuthService:       authService,
		CourseService:     courseService,
		LectureService:    lectureService,
		EnrollmentService: enrollmentService,
		ProgressService:   progressService,
		AccessService:     accessService,
		QuizService:       quizService,
	}

	r := httpdelivery.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	log.Info("HTTP server listening on " + cfg.HTTPServer.Address)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("http server stopped", err)
	}

	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("error shutting down server", err)
	}
}
