package config

import (
	"errors"
	"fmt"
	"time"

	"hris-account/internal/shared/connection"
	"hris-account/internal/storage"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv string `mapstructure:"APP_ENV"`
	Port   string `mapstructure:"PORT"`

	DBHost        string `mapstructure:"DB_HOST"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBSSLMode     string `mapstructure:"DB_SSLMODE"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	IdempotencyTTL time.Duration `mapstructure:"IDEMPOTENCY_TTL"`
	KafkaBroker    string        `mapstructure:"KAFKA_BROKER"`

	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	JWTExpiresIn time.Duration `mapstructure:"JWT_EXPIRES_IN"`

	ResetTokenTTL    time.Duration `mapstructure:"RESET_TOKEN_TTL"`
	ExposeResetToken bool          `mapstructure:"EXPOSE_RESET_TOKEN"`
	ResetPasswordURL string        `mapstructure:"RESET_PASSWORD_URL"`

	StorageDriver   string `mapstructure:"STORAGE_DRIVER"`
	UploadDir       string `mapstructure:"UPLOAD_DIR"`
	UploadURLPrefix string `mapstructure:"UPLOAD_URL_PREFIX"`

	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`
	S3PublicURL string `mapstructure:"S3_PUBLIC_URL"`

	MailgunDomain  string `mapstructure:"MAILGUN_DOMAIN"`
	MailgunAPIKey  string `mapstructure:"MAILGUN_API_KEY"`
	MailgunAPIBase string `mapstructure:"MAILGUN_API_BASE"`
	MailFrom       string `mapstructure:"MAIL_FROM"`
}

var defaults = map[string]any{
	"APP_ENV":            "development",
	"PORT":               "3000",
	"DB_HOST":            "localhost",
	"DB_USER":            "postgres",
	"DB_PASSWORD":        "postgres",
	"DB_NAME":            "hris",
	"DB_PORT":            "5432",
	"DB_SSLMODE":         "disable",
	"DB_AUTO_MIGRATE":    false,
	"REDIS_ADDR":         "",
	"IDEMPOTENCY_TTL":    24 * time.Hour,
	"KAFKA_BROKER":       "",
	"JWT_SECRET":         "",
	"JWT_EXPIRES_IN":     24 * time.Hour,
	"RESET_TOKEN_TTL":    15 * time.Minute,
	"EXPOSE_RESET_TOKEN": false,
	"RESET_PASSWORD_URL": "http://localhost:5173/reset-password",
	"STORAGE_DRIVER":     "local",
	"UPLOAD_DIR":         "upload",
	"UPLOAD_URL_PREFIX":  "/upload",
	"S3_ENDPOINT":        "",
	"S3_REGION":          "us-east-1",
	"S3_BUCKET":          "",
	"S3_ACCESS_KEY":      "",
	"S3_SECRET_KEY":      "",
	"S3_PUBLIC_URL":      "",
	"MAILGUN_DOMAIN":     "",
	"MAILGUN_API_KEY":    "",
	"MAILGUN_API_BASE":   "https://api.mailgun.net",
	"MAIL_FROM":          "HRIS <no-reply@hris.local>",
}

// Load reads configuration from the environment and an optional config.yaml in
// the working directory. Environment always wins.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if c.ResetTokenTTL <= 0 {
		return errors.New("RESET_TOKEN_TTL must be positive")
	}
	switch c.StorageDriver {
	case "local":
		if c.UploadDir == "" {
			return errors.New("UPLOAD_DIR is required")
		}
	case "s3":
		if c.S3Bucket == "" || c.S3PublicURL == "" {
			return errors.New("S3_BUCKET and S3_PUBLIC_URL are required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) MailEnabled() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != ""
}

func (c *Config) S3() storage.S3Config {
	return storage.S3Config{
		Endpoint:  c.S3Endpoint,
		Region:    c.S3Region,
		Bucket:    c.S3Bucket,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
		PublicURL: c.S3PublicURL,
	}
}

func (c *Config) Postgres() connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     c.DBHost,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		Port:     c.DBPort,
		SSLMode:  c.DBSSLMode,
	}
}
