package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go.uber.org/zap"

	"github.com/nikile1123/hris-backend/internal/employee"
	"github.com/nikile1123/hris-backend/internal/messaging/rabbit"
	"github.com/nikile1123/hris-backend/internal/middleware"
	"github.com/nikile1123/hris-backend/internal/review"
	"github.com/nikile1123/hris-backend/internal/team"
)

// registerModules builds every feature module on top of the shared
// connections. All modules that emit notifications share one outbox
// repository so their events land in the same table.
func registerModules(router *gin.Engine, db *gorm.DB, redisClient *redis.Client) {
	logger := zap.L()

	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")

	outboxRepo := rabbit.NewOutboxRepository(db)

	teamRepo := team.NewRepository(db)
	teamService := team.NewService(teamRepo, logger)
	teamHandler := team.NewHandler(teamService, logger)
	team.RegisterRoutes(api, teamHandler, logger)

	employeeRepo := employee.NewRepository(db)
	employeeService := employee.NewService(db, employeeRepo, outboxRepo, redisClient, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	employee.RegisterRoutes(api, employeeHandler, logger)

	reviewRepo := review.NewRepository(db)
	reviewService := review.NewService(db, reviewRepo, outboxRepo, logger)
	reviewHandler := review.NewHandler(reviewService, logger)
	review.RegisterRoutes(api, reviewHandler, logger)
}
