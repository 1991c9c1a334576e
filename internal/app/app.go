package app

import (
	"context"
	"net/http"

	"hris-account/internal/config"
	"hris-account/internal/department"
	"hris-account/internal/employee"
	"hris-account/internal/mail"
	"hris-account/internal/messaging/kafka"
	"hris-account/internal/shared/connection"
	"hris-account/internal/storage"
	"hris-account/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// BuildApp connects the infrastructure and registers every route on router.
// The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(ctx context.Context), error) {
	logger := zap.L().Named("app")
	ctx := context.Background()

	gormDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency keys are ignored")
	}

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.StorageDriver == "local" {
		router.Static(cfg.UploadURLPrefix, cfg.UploadDir)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerModules(router.Group("/api"), moduleDeps{
		cfg:      cfg,
		db:       gormDB,
		rdb:      rdb,
		images:   images,
		notifier: newNotifier(cfg, logger),
		logger:   zap.L(),
	})

	cleanup := func(context.Context) {
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				logger.Warn("close redis failed", zap.Error(err))
			}
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("close database failed", zap.Error(err))
			}
		}
	}

	return cleanup, nil
}

func connectDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres(), connectRetries)
	if err != nil {
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := gormDB.AutoMigrate(
			&department.Department{},
			&user.User{},
			&employee.Employee{},
			&kafka.OutboxEvent{},
		); err != nil {
			return nil, err
		}
		zap.L().Named("app").Info("database schema migrated")
	}

	return gormDB, nil
}

func newImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	if cfg.StorageDriver == "s3" {
		store, err := storage.NewS3Store(ctx, cfg.S3())
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return storage.NewLocalStore(cfg.UploadDir, cfg.UploadURLPrefix), nil
}

// newNotifier sends through mailgun when it is configured and only logs
// otherwise.
func newNotifier(cfg *config.Config, logger *zap.Logger) *mail.Notifier {
	var mailer mail.Mailer
	if cfg.MailEnabled() {
		mailer = mail.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase)
	} else {
		logger.Warn("mailgun not configured, mail is logged instead of sent")
		mailer = mail.NewLogMailer()
	}
	return mail.NewNotifier(mailer, cfg.MailFrom, cfg.ResetPasswordURL)
}

// NewLogger returns a production logger for APP_ENV=production and a
// development logger otherwise.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
