package v1

import (
	"alumni-network-backend/config"
	"alumni-network-backend/internal/delivery/http/middleware"
	"alumni-network-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	UserUC       domain.UserUsecase
	DirectoryUC  domain.DirectoryUsecase
	EmailUC      domain.EmailUsecase
	ConnectionUC domain.ConnectionUsecase
	CompanyUC    domain.CompanyUsecase
	EmploymentUC domain.EmploymentUsecase
	InterviewUC  domain.InterviewUsecase
	ProcessUC    domain.ProcessUsecase
	EventUC      domain.EventUsecase
	AdminUC      domain.AdminUsecase
	HealthUC     domain.HealthUsecase
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	configureBinding()

	r := gin.New()
	cfg := deps.Config

	origins := append([]string{cfg.FrontendURL}, cfg.AllowedOrigins...)

	// Global Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(origins))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware(cfg))
	r.Use(middleware.CSRFMiddleware(cfg.IsProduction()))

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC, deps.UserUC, cfg)
		NewUserHandler(protected, deps.UserUC)
		NewAlumniHandler(protected, deps.DirectoryUC)
		NewEmailHandler(protected, deps.EmailUC)
		NewConnectionHandler(protected, deps.ConnectionUC)
		NewCompanyHandler(protected, deps.CompanyUC)
		NewEmploymentHandler(protected, deps.EmploymentUC)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewProcessHandler(protected, deps.ProcessUC)
		NewEventHandler(protected, deps.EventUC)
		NewAdminHandler(protected, deps.AdminUC)
	}

	return r
}
