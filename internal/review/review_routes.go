package review

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nikile1123/hris-backend/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	reviews := r.Group("/reviews")
	reviews.Use(middleware.ContextLogger(logger))
	{
		reviews.GET("", handler.GetAll)
		reviews.GET("/:id", handler.GetByID)
		reviews.POST("", handler.Create)
		reviews.PUT("/:id", handler.Update)
		reviews.DELETE("/:id", handler.Delete)
	}
}
