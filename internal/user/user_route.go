package user

import (
	"hris-account/internal/middleware"
	"hris-account/internal/shared/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	sessions *session.Manager,
	logger *zap.Logger,
) {
	settings := r.Group("/settings")
	settings.Use(middleware.AuthMiddleware(sessions))
	settings.Use(middleware.ContextLogger(logger))
	{
		settings.POST("/change-password", handler.ChangePassword)
		settings.PUT("/update-profile", handler.UpdateProfile)
	}
}
