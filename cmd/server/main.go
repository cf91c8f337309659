package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dugout/coaching-app/internal/api"
	"github.com/dugout/coaching-app/internal/config"
	"github.com/dugout/coaching-app/internal/repository/mongo"
	"github.com/dugout/coaching-app/internal/service"
	"github.com/dugout/coaching-app/internal/storage"
	"github.com/dugout/coaching-app/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	zlog.Info("starting coaching-app server", zap.String("address", cfg.Server.Address))

	// --- Database ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		zlog.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			zlog.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	// Index creation runs in the background; the unique indexes back the
	// conflict semantics of the repositories, so failures are logged loudly.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureTemplateIndexes(ctx, appDB.Collection("program_templates"))
		mongo.EnsureTemplateWeekIndexes(ctx, appDB.Collection("template_weeks"))
		mongo.EnsureTemplateDayIndexes(ctx, appDB.Collection("template_days"))
		mongo.EnsureDayAssignmentIndexes(ctx, appDB.Collection("template_day_assignments"))
		mongo.EnsureFocusIndexes(ctx, appDB.Collection("focuses"))
		mongo.EnsureDrillIndexes(ctx, appDB.Collection("drills"))
		mongo.EnsureEnrollmentIndexes(ctx, appDB.Collection("enrollments"))
		mongo.EnsureWeekOverrideIndexes(ctx, appDB.Collection("week_overrides"))
		mongo.EnsureDayOverrideIndexes(ctx, appDB.Collection("day_overrides"))
		mongo.EnsureCompletionIndexes(ctx, appDB.Collection("completions"))
		mongo.EnsureSubmissionIndexes(ctx, appDB.Collection("submissions"))
		mongo.EnsureReviewIndexes(ctx, appDB.Collection("reviews"))
		mongo.EnsureVideoIndexes(ctx, appDB.Collection("videos"))
		zlog.Info("index creation completed")
	}()

	// --- Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, zlog.Named("s3"))
	if err != nil {
		zlog.Fatal("failed to initialize S3 storage", zap.Error(err))
	}

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	weekRepo := mongo.NewMongoTemplateWeekRepository(appDB)
	dayRepo := mongo.NewMongoTemplateDayRepository(appDB)
	dayAssignRepo := mongo.NewMongoDayAssignmentRepository(appDB)
	focusRepo := mongo.NewMongoFocusRepository(appDB)
	drillRepo := mongo.NewMongoDrillRepository(appDB)
	enrollmentRepo := mongo.NewMongoEnrollmentRepository(appDB)
	weekOverrideRepo := mongo.NewMongoWeekOverrideRepository(appDB)
	dayOverrideRepo := mongo.NewMongoDayOverrideRepository(appDB)
	completionRepo := mongo.NewMongoCompletionRepository(appDB)
	submissionRepo := mongo.NewMongoSubmissionRepository(appDB)
	reviewRepo := mongo.NewMongoReviewRepository(appDB)
	videoRepo := mongo.NewMongoVideoRepository(appDB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	templateService := service.NewTemplateService(templateRepo, weekRepo, dayRepo, dayAssignRepo, focusRepo, drillRepo, dayOverrideRepo)
	resolver := service.NewPlanResolver(dayRepo, dayAssignRepo, dayOverrideRepo, completionRepo, submissionRepo, reviewRepo, focusRepo, drillRepo)
	coachService := service.NewCoachService(userRepo, templateRepo, enrollmentRepo, weekOverrideRepo, resolver)
	playerService := service.NewPlayerService(templateRepo, enrollmentRepo, weekRepo, weekOverrideRepo, videoRepo, fileStorage, resolver)

	// --- HTTP ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(logger.GinMiddleware(zlog), gin.Recovery())

	api.SetupRoutes(router, cfg.JWT.Secret, authService, templateService, coachService, playerService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("listen and serve error", zap.Error(err))
		}
	}()
	zlog.Info("server listening", zap.String("address", cfg.Server.Address))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}
