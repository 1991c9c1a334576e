package auth

import (
	"time"

	"hris-account/internal/middleware"
	"hris-account/internal/shared/session"
	"hris-account/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	sessions *session.Manager,
	redisClient *redis.Client,
	idempotencyTTL time.Duration,
	logger *zap.Logger,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.ContextLogger(logger), handler.Login)
		auth.POST("/forgot-password", middleware.ContextLogger(logger), handler.ForgotPassword)
		auth.POST("/reset-password/:token", middleware.ContextLogger(logger), handler.ResetPassword)

		auth.GET("/me",
			middleware.AuthMiddleware(sessions),
			middleware.ContextLogger(logger),
			handler.Me,
		)
		auth.POST("/create-employee",
			middleware.AuthMiddleware(sessions),
			middleware.RoleMiddleware(user.RoleAdmin),
			middleware.ContextLogger(logger),
			middleware.Idempotency(redisClient, idempotencyTTL),
			handler.CreateEmployee,
		)
	}
}
