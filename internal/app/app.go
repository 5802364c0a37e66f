package app

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nikile1123/hris-backend/internal/shared/connection"
)

const connectRetries = 5

// BuildApp wires infrastructure and routes for the API binary.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		connectRetries,
	)
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), connectRetries)
	if err != nil {
		// The roster cache is an optimization, not a dependency the API
		// cannot serve without.
		zap.L().Warn("redis unavailable, employee options cache disabled", zap.Error(err))
		redisClient = nil
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerModules(router, gormDB, redisClient)

	return nil
}
