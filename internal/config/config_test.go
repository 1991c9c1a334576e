package config_test

import (
	"testing"
	"time"

	"hris-account/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 15*time.Minute, cfg.ResetTokenTTL)
	assert.False(t, cfg.ExposeResetToken)
	assert.Equal(t, "/upload", cfg.UploadURLPrefix)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.False(t, cfg.MailEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRES_IN", "2h")
	t.Setenv("RESET_TOKEN_TTL", "5m")
	t.Setenv("EXPOSE_RESET_TOKEN", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("MAILGUN_DOMAIN", "mg.example.com")
	t.Setenv("MAILGUN_API_KEY", "key-123")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 5*time.Minute, cfg.ResetTokenTTL)
	assert.True(t, cfg.ExposeResetToken)
	assert.Equal(t, "db", cfg.Postgres().Host)
	assert.True(t, cfg.MailEnabled())
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()

	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestValidate(t *testing.T) {
	valid := config.Config{JWTSecret: "s", JWTExpiresIn: time.Hour, ResetTokenTTL: time.Minute, StorageDriver: "local", UploadDir: "upload"}
	assert.NoError(t, valid.Validate())

	cfg := valid
	cfg.ResetTokenTTL = 0
	assert.EqualError(t, cfg.Validate(), "RESET_TOKEN_TTL must be positive")

	cfg = valid
	cfg.StorageDriver = "s3"
	assert.Error(t, cfg.Validate())

	cfg.S3Bucket = "images"
	cfg.S3PublicURL = "https://cdn.example.com"
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "images", cfg.S3().Bucket)

	cfg.StorageDriver = "ftp"
	assert.EqualError(t, cfg.Validate(), `unknown STORAGE_DRIVER "ftp"`)
}
