package team

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nikile1123/hris-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	teams := r.Group("/teams")
	teams.Use(middleware.ContextLogger(logger))
	{
		teams.GET("", handler.GetAll)
		teams.GET("/:id", handler.GetByID)
		teams.POST("", handler.Create)
		teams.PUT("/:id", handler.Update)
		teams.DELETE("/:id", handler.Delete)
	}
}
