package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	Port           string
	AllowedOrigins []string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	StoreTimeout    time.Duration
	StoreMaxRetries uint64

	RedisURL       string
	PaymentLockTTL time.Duration

	StripeSecretKey   string
	PaymentCurrency   string
	GatewayTimeout    time.Duration
	GatewayMaxRetries int64

	FirebaseServiceAccountPath string
	JWTSecret                  string

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	AWSS3Bucket  string
	UploadDir    string
	BaseURL      string

	SendGridAPIKey string
	MailFromEmail  string
	MailFromName   string
	MailTimeout    time.Duration
}

// Load reads the optional .env file and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "profast"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		StoreTimeout:    getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		StoreMaxRetries: uint64(getEnvInt("STORE_MAX_RETRIES", 3)),

		RedisURL:       getEnv("REDIS_URL", "redis://redis:6379"),
		PaymentLockTTL: getEnvDuration("PAYMENT_LOCK_TTL", 30*time.Second),

		StripeSecretKey:   getEnv("STRIPE_SECRET_KEY", ""),
		PaymentCurrency:   strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),
		GatewayTimeout:    getEnvDuration("GATEWAY_TIMEOUT", 10*time.Second),
		GatewayMaxRetries: int64(getEnvInt("GATEWAY_MAX_RETRIES", 2)),

		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		JWTSecret:                  getEnv("JWT_SECRET", ""),

		AWSRegion:    getEnv("AWS_REGION", ""),
		AWSAccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSS3Bucket:  getEnv("AWS_S3_BUCKET", ""),
		UploadDir:    getEnv("UPLOAD_DIR", "/app/uploads"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		MailFromEmail:  getEnv("MAIL_FROM_EMAIL", ""),
		MailFromName:   getEnv("MAIL_FROM_NAME", "ProFast"),
		MailTimeout:    getEnvDuration("MAIL_TIMEOUT", 10*time.Second),
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Port == "" {
		result = multierror.Append(result, errors.New("PORT must be set"))
	}
	if c.DBHost == "" || c.DBName == "" {
		result = multierror.Append(result, errors.New("DB_HOST and DB_NAME must be set"))
	}
	if c.StripeSecretKey == "" {
		result = multierror.Append(result, errors.New("STRIPE_SECRET_KEY must be set"))
	}
	if c.FirebaseServiceAccountPath == "" && c.JWTSecret == "" {
		result = multierror.Append(result, errors.New("either FIREBASE_SERVICE_ACCOUNT_PATH or JWT_SECRET must be set"))
	}
	if c.PaymentCurrency == "" {
		result = multierror.Append(result, errors.New("PAYMENT_CURRENCY must not be empty"))
	}
	if c.UsesS3() && c.AWSS3Bucket == "" {
		result = multierror.Append(result, errors.New("AWS_S3_BUCKET must be set when AWS credentials are configured"))
	}
	if c.SendsMail() && c.MailFromEmail == "" {
		result = multierror.Append(result, errors.New("MAIL_FROM_EMAIL must be set when SENDGRID_API_KEY is configured"))
	}
	if c.SendsMail() && c.MailTimeout <= 0 {
		result = multierror.Append(result, errors.New("MAIL_TIMEOUT must be positive when SENDGRID_API_KEY is configured"))
	}
	if c.StoreTimeout <= 0 || c.GatewayTimeout <= 0 {
		result = multierror.Append(result, errors.New("STORE_TIMEOUT and GATEWAY_TIMEOUT must be positive"))
	}

	return result.ErrorOrNil()
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// UsesS3 is true when all AWS credentials are present.
func (c *Config) UsesS3() bool {
	return c.AWSRegion != "" && c.AWSAccessKey != "" && c.AWSSecretKey != ""
}

// SendsMail is true when transactional email is configured.
func (c *Config) SendsMail() bool {
	return c.SendGridAPIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
