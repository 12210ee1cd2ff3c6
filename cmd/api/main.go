package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alumni-network-backend/config"
	_ "alumni-network-backend/docs" // Important for Swagger
	v1 "alumni-network-backend/internal/delivery/http/v1"
	"alumni-network-backend/internal/domain"
	"alumni-network-backend/internal/repository/postgres"
	"alumni-network-backend/internal/usecase"
	"alumni-network-backend/pkg/auth"
	"alumni-network-backend/pkg/database"
	"alumni-network-backend/pkg/email"
	"alumni-network-backend/pkg/logger"
	"alumni-network-backend/pkg/redis"
	"alumni-network-backend/pkg/security"
	"alumni-network-backend/pkg/security/antivirus"
	"alumni-network-backend/pkg/storage"
	"alumni-network-backend/pkg/validation"
)

// @title           Alumni Network API
// @version         1.0
// @description     Alumni directory, connections and interview knowledge base.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.IsProduction())
	secLog := security.InitSecurityLogger("alumni-network", cfg.Environment)
	logger.Log.Info("Starting alumni network backend", "port", cfg.Port, "environment", cfg.Environment)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		logger.Log.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}
	created, err := database.EnsureSuperuser(ctx, dbPool, cfg.FirstSuperuser, cfg.FirstSuperuserPassword)
	if err != nil {
		logger.Log.Error("Failed to bootstrap superuser", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Log.Info("Created first superuser", "email", cfg.FirstSuperuser)
	}

	// 4. Setup Redis (optional)
	var redisCheck func(ctx context.Context) error
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache", "error", err)
		} else {
			redisCheck = redis.HealthCheck
		}
	}
	cache := redis.NewCache(redis.Client())

	// 5. Setup Object Storage (optional)
	var imageStore domain.ImageStore
	store, err := storage.NewStore(ctx, storage.Config{
		Provider:        storage.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
		PublicBaseURL:   cfg.S3PublicBaseURL,
	})
	switch {
	case err != nil:
		logger.Log.Warn("Object storage misconfigured, image uploads disabled", "error", err)
	case store == nil:
		logger.Log.Warn("Object storage not configured, image uploads disabled")
	default:
		imageStore = store
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	var notifier domain.Notifier
	if emailService.IsConfigured() {
		notifier = emailService
	} else {
		logger.Log.Warn("Email service not configured - connection notifications will be skipped")
	}

	// 7. Setup Tokens
	var jwksProvider *auth.Provider
	if cfg.JWKSUrl != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSUrl, cfg.JWTIssuer, cfg.JWTAudience)
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenExpires, jwksProvider)

	uploads := usecase.ImageUploads{
		Store:   imageStore,
		Limiter: security.NewUploadLimiter(0),
	}
	if cfg.ClamAVAddress != "" {
		scanner := antivirus.NewClamAV(cfg.ClamAVAddress, 30*time.Second)
		if err := scanner.Ping(ctx); err != nil {
			logger.Log.Warn("ClamAV not reachable, uploads will be refused until it is", "error", err)
		}
		uploads.Scanner = scanner
	}

	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, secLog)

	// 8. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	emailRepo := postgres.NewEmailRepository(dbPool)
	directoryRepo := postgres.NewDirectoryRepository(dbPool)
	connectionRepo := postgres.NewConnectionRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	employmentRepo := postgres.NewEmploymentRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	processRepo := postgres.NewProcessRepository(dbPool)
	eventRepo := postgres.NewEventRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)

	// 9. Setup UseCases
	audit := usecase.NewAuditTrail(adminRepo, secLog)
	authUC := usecase.NewAuthUsecase(userRepo, tokens, loginTracker, secLog)
	userUC := usecase.NewUserUsecase(userRepo, emailRepo, directoryRepo, cache, uploads)
	directoryUC := usecase.NewDirectoryUsecase(directoryRepo)
	emailUC := usecase.NewEmailUsecase(emailRepo)
	connectionUC := usecase.NewConnectionUsecase(connectionRepo, userRepo, emailRepo, notifier)
	companyUC := usecase.NewCompanyUsecase(companyRepo, cache, uploads, audit)
	employmentUC := usecase.NewEmploymentUsecase(employmentRepo, cache)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, validation.New())
	processUC := usecase.NewProcessUsecase(processRepo, companyRepo)
	eventUC := usecase.NewEventUsecase(eventRepo, audit)
	adminUC := usecase.NewAdminUsecase(adminRepo, audit, cache)
	healthUC := usecase.NewHealthUsecase(dbPool, redisCheck)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		DirectoryUC:  directoryUC,
		EmailUC:      emailUC,
		ConnectionUC: connectionUC,
		CompanyUC:    companyUC,
		EmploymentUC: employmentUC,
		InterviewUC:  interviewUC,
		ProcessUC:    processUC,
		EventUC:      eventUC,
		AdminUC:      adminUC,
		HealthUC:     healthUC,
		Config:       cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	_ = redis.Close()
	_ = secLog.Sync()

	logger.Log.Info("Server exiting")
}
