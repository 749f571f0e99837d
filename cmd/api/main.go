package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/hangang-korean/admin-service/internal/adapters/cache"
	"github.com/hangang-korean/admin-service/internal/adapters/handler"
	"github.com/hangang-korean/admin-service/internal/adapters/middleware"
	"github.com/hangang-korean/admin-service/internal/adapters/repository"
	"github.com/hangang-korean/admin-service/internal/config"
	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/services"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	userRepo := repository.NewUserSQLRepository(db)
	courseRepo := repository.NewCourseSQLRepository(db)
	scheduleRepo := repository.NewScheduleSQLRepository(db)
	enrollmentRepo := repository.NewEnrollmentSQLRepository(db)
	galleryRepo := repository.NewGallerySQLRepository(db)

	denylist := cache.NewRedisDenylist(redisClient)

	userService := services.NewUserService(userRepo)
	courseService := services.NewCourseService(courseRepo)
	scheduleService := services.NewScheduleService(scheduleRepo, courseRepo, userRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo)
	galleryService := services.NewGalleryService(galleryRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTPrivateKey, denylist)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, denylist)

	userHandler := handler.NewUserHandler(userService)
	courseHandler := handler.NewCourseHandler(courseService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	galleryHandler := handler.NewGalleryHandler(galleryService)
	authHandler := handler.NewAuthHandler(authService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Role groups for the admin dashboard. Staff can read everything;
	// content changes need a managing role; user administration is
	// restricted further.
	staff := []string{
		string(domain.RoleSuperAdmin),
		string(domain.RoleAdmin),
		string(domain.RoleCourseManager),
		string(domain.RoleSupport),
		string(domain.RoleViewer),
	}
	managers := []string{
		string(domain.RoleSuperAdmin),
		string(domain.RoleAdmin),
		string(domain.RoleCourseManager),
	}
	admins := []string{
		string(domain.RoleSuperAdmin),
		string(domain.RoleAdmin),
	}

	mux := http.NewServeMux()

	route := func(pattern string, roles []string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Metrics(pattern, authMiddleware.RequireRole(roles, h)))
	}

	// Health endpoints (Kubernetes compatible)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("POST /auth/login", middleware.Metrics("POST /auth/login", http.HandlerFunc(authHandler.Login)))
	route("POST /auth/logout", staff, authHandler.Logout)

	route("GET /users", staff, userHandler.List)
	route("POST /users", admins, userHandler.Create)
	route("GET /users/{id}", staff, userHandler.Get)
	route("PATCH /users/{id}", admins, userHandler.Update)

	route("GET /courses", staff, courseHandler.List)
	route("POST /courses", managers, courseHandler.Create)
	route("GET /courses/{id}", staff, courseHandler.Get)
	route("PUT /courses/{id}", managers, courseHandler.Update)
	route("DELETE /courses/{id}", managers, courseHandler.Delete)

	route("GET /schedules", staff, scheduleHandler.List)
	route("POST /schedules", managers, scheduleHandler.Create)
	route("GET /schedules/{id}", staff, scheduleHandler.Get)
	route("PUT /schedules/{id}", managers, scheduleHandler.Update)
	route("DELETE /schedules/{id}", managers, scheduleHandler.Delete)

	route("GET /enrollments", staff, enrollmentHandler.List)
	route("POST /enrollments", managers, enrollmentHandler.Create)
	route("GET /enrollments/{id}", staff, enrollmentHandler.Get)
	route("PUT /enrollments/{id}", managers, enrollmentHandler.Update)
	route("POST /enrollments/{id}/approve", managers, enrollmentHandler.Approve)
	route("POST /enrollments/{id}/cancel", managers, enrollmentHandler.Cancel)

	route("GET /gallery", staff, galleryHandler.List)
	route("POST /gallery", managers, galleryHandler.Create)
	route("PUT /gallery/reorder", managers, galleryHandler.Reorder)
	route("PATCH /gallery/{id}", managers, galleryHandler.Update)
	route("DELETE /gallery/{id}", managers, galleryHandler.Delete)

	server := middleware.CORSMiddleware(cfg.AllowedOrigins)(mux)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, server); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
