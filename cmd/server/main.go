package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/review-composer/internal/config"
	"github.com/fadilmartias/review-composer/internal/domain/fiber/handler"
	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/fadilmartias/review-composer/internal/middleware"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/repository"
	"github.com/fadilmartias/review-composer/internal/service"
	"github.com/fadilmartias/review-composer/internal/usecase"
	"github.com/fadilmartias/review-composer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	appConfig := config.LoadAppConfig()
	if err := logger.Init(appConfig.LogLevel, appConfig.LogFormat); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()
	if envErr != nil {
		log.Info("no .env file loaded", zap.Error(envErr))
	}

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    code,
				Message: message,
			}, err)
		},
	})
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${locals:requestid} | ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	userRepo := repository.NewUserRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	taskRepo := repository.NewReviewTaskRepository(db)
	embeddingRepo := repository.NewReviewEmbeddingRepository(db)

	draftConfig := config.LoadDraftConfig()
	gemini, err := service.NewGeminiService(ctx, config.LoadGeminiConfig(), draftConfig.Temperature)
	if err != nil {
		log.Warn("gemini disabled, similarity search unavailable", zap.Error(err))
	}

	var drafter service.Drafter = service.NewOpenRouterService(config.LoadOpenRouterConfig(), draftConfig.Temperature)
	if draftConfig.Provider == config.DraftProviderGemini {
		if gemini == nil {
			log.Fatal("DRAFT_PROVIDER is gemini but the gemini client is not configured")
		}
		drafter = gemini
	}

	deps := usecase.ReviewUsecaseDeps{
		Tasks:        taskRepo,
		Policies:     policyRepo,
		Assignments:  assignmentRepo,
		Embeddings:   embeddingRepo,
		Drafter:      drafter,
		Extractor:    service.NewPDFExtractor(),
		DraftTimeout: draftConfig.Timeout,
	}
	if gemini != nil {
		deps.Embedder = gemini
	}
	reviewUC := usecase.NewReviewUsecase(deps)

	tokens := service.NewTokenService(config.LoadAuthConfig())
	authUC := usecase.NewAuthUsecase(userRepo, tokens)

	api := app.Group("/api")
	handler.NewAuthHandler(authUC).RegisterRoutes(api)

	// auth routes must stay registered above this group; it matches all of /api
	protected := api.Group("", middleware.Auth(tokens))
	handler.NewAssignmentHandler(usecase.NewAssignmentUsecase(assignmentRepo)).RegisterRoutes(protected)
	handler.NewPolicyHandler(usecase.NewPolicyUsecase(policyRepo)).RegisterRoutes(protected)
	handler.NewReviewHandler(reviewUC, appConfig.UploadDir).RegisterRoutes(protected)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server running", zap.String("port", appConfig.Port), zap.String("drafter", draftConfig.Provider))
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal("listen failed", zap.Error(err))
	}
}

func ConnectDB() *gorm.DB {
	log := logger.L()
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	logLevel := gormlogger.Warn
	if appConfig.IsProduction() {
		logLevel = gormlogger.Error
	}
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatal("could not get database instance", zap.Error(err))
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(100)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	for _, ext := range []string{`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`, `CREATE EXTENSION IF NOT EXISTS vector`} {
		if err := db.Exec(ext).Error; err != nil {
			log.Fatal("create extension failed", zap.String("sql", ext), zap.Error(err))
		}
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Assignment{},
		&model.EvaluationPolicy{},
		&model.ReviewTask{},
		&model.ReviewOutput{},
		&model.ReviewEmbedding{},
	)
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	return db
}
