package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cwdb/course-ratings-api/api/swagger"
	"github.com/cwdb/course-ratings-api/internal/handler"
	"github.com/cwdb/course-ratings-api/internal/middleware"
	"github.com/cwdb/course-ratings-api/internal/models"
	"github.com/cwdb/course-ratings-api/internal/repository"
	"github.com/cwdb/course-ratings-api/internal/service"
	"github.com/cwdb/course-ratings-api/pkg/cache"
	"github.com/cwdb/course-ratings-api/pkg/config"
	"github.com/cwdb/course-ratings-api/pkg/database"
	"github.com/cwdb/course-ratings-api/pkg/logger"
	corsmiddleware "github.com/cwdb/course-ratings-api/pkg/middleware/cors"
	reqidmiddleware "github.com/cwdb/course-ratings-api/pkg/middleware/requestid"
)

// @title Course Ratings API
// @version 1.0.0
// @description Professor and module offering ratings service
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.Database.MigrationsDir); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()

	catalogRepo := repository.NewCatalogRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	catalogSvc := service.NewCatalogService(catalogRepo, assignmentRepo, logr)
	ratingSvc := service.NewRatingService(catalogRepo, assignmentRepo, ratingRepo, logr)
	adminSvc := service.NewAdminService(catalogRepo, assignmentRepo, validate, logr)
	exportSvc := service.NewExportService(ratingSvc, logr)
	authSvc := service.NewAuthService(userRepo, sessionRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})

	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	ratingHandler := handler.NewRatingHandler(ratingSvc, metricsSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		api.GET("/list", catalogHandler.ListOfferings)
		api.GET("/view", ratingHandler.ViewAll)
		api.GET("/average/:professorId/:moduleCode", ratingHandler.Average)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		authed := api.Group("")
		authed.Use(middleware.JWT(authSvc))
		{
			authed.POST("/rate-professor", ratingHandler.Rate)
			authed.POST("/logout", authHandler.Logout)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
		{
			admin.POST("/professors", adminHandler.CreateProfessor)
			admin.POST("/modules", adminHandler.CreateModule)
			admin.DELETE("/modules/:code", adminHandler.DeleteModule)
			admin.POST("/module-instances", adminHandler.CreateModuleInstance)
			admin.POST("/assignments", adminHandler.CreateAssignment)
			admin.GET("/ratings/export", adminHandler.ExportRatings)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
