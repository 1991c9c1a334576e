package app

import (
	"hris-account/internal/auth"
	"hris-account/internal/config"
	"hris-account/internal/department"
	"hris-account/internal/employee"
	"hris-account/internal/mail"
	"hris-account/internal/messaging/kafka"
	"hris-account/internal/shared/session"
	"hris-account/internal/storage"
	"hris-account/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type moduleDeps struct {
	cfg      *config.Config
	db       *gorm.DB
	rdb      *redis.Client
	images   storage.ImageStore
	notifier *mail.Notifier
	logger   *zap.Logger
}

func registerModules(api *gin.RouterGroup, deps moduleDeps) {
	cfg := deps.cfg
	sessions := session.NewManager(cfg.JWTSecret, cfg.JWTExpiresIn)

	// --- Repositories ---
	userRepo := user.NewRepository(deps.db)
	employeeRepo := employee.NewRepository(deps.db)
	departmentRepo := department.NewRepository(deps.db)
	outboxRepo := kafka.NewOutboxRepository(deps.db)

	// --- Services ---
	authService := auth.NewService(
		deps.db,
		userRepo,
		employeeRepo,
		departmentRepo,
		outboxRepo,
		sessions,
		deps.notifier,
		auth.Config{
			ResetTokenTTL:    cfg.ResetTokenTTL,
			ExposeResetToken: cfg.ExposeResetToken,
		},
		deps.logger,
	)
	userService := user.NewService(userRepo, deps.logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, deps.images, auth.HandlerConfig{
		SecureCookie: cfg.IsProduction(),
		CookieMaxAge: cfg.JWTExpiresIn,
	}, deps.logger)
	userHandler := user.NewHandler(userService, deps.logger)

	// --- Routes Registration ---
	auth.RegisterRoutes(api, authHandler, sessions, deps.rdb, cfg.IdempotencyTTL, deps.logger)
	user.RegisterRoutes(api, userHandler, sessions, deps.logger)
}
