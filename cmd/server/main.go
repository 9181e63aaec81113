package main

import (
	"log"
	"net/http"
	"time"

	_ "github.com/IrinaIzq/To-do-list-app/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/IrinaIzq/To-do-list-app/internal/auth"
	"github.com/IrinaIzq/To-do-list-app/internal/cache"
	"github.com/IrinaIzq/To-do-list-app/internal/config"
	"github.com/IrinaIzq/To-do-list-app/internal/db"
	"github.com/IrinaIzq/To-do-list-app/internal/handler"
	"github.com/IrinaIzq/To-do-list-app/internal/model"
	"github.com/IrinaIzq/To-do-list-app/internal/repository"
	"github.com/IrinaIzq/To-do-list-app/internal/router"
	"github.com/IrinaIzq/To-do-list-app/internal/service"
)

// @title To-Do Manager API
// @version 1.0
// @description Personal task-tracking API with categories, priority-ordered listings and JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Task{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	hasher := auth.NewBcryptHasher()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, hasher)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo, categoryService, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Register routes
	router.Register(e, jwtService, authHandler, categoryHandler, taskHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
