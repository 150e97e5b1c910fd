package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App           AppConfig
	HTTP          ServerConfig
	MySQL         MySQLConfig
	Log           LogConfig
	Stripe        StripeConfig
	Notifications NotificationsConfig
	Jobs          JobsConfig
}

type AppConfig struct {
	ServiceName    string
	AdminJWTSecret string
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type StripeConfig struct {
	SecretKey                 string
	WebhookSecret             string
	SignatureToleranceSeconds int64
}

type NotificationsConfig struct {
	FromEmail      string
	WhatsAppNumber string
}

type JobsConfig struct {
	ReminderInterval time.Duration
	ThankYouInterval time.Duration
	ReminderLeadTime time.Duration
	ThankYouLookback time.Duration
	BatchSize        int32
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		App: AppConfig{
			ServiceName:    getEnv("APP_SERVICE_NAME", "motel-booking-service"),
			AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getMinutesEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Stripe: StripeConfig{
			SecretKey:                 getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:             getEnv("STRIPE_WEBHOOK_SECRET", ""),
			SignatureToleranceSeconds: int64(getIntEnv("STRIPE_SIGNATURE_TOLERANCE_SECONDS", 300)),
		},
		Notifications: NotificationsConfig{
			FromEmail:      getEnv("NOTIFICATIONS_FROM_EMAIL", "reservations@johnservicemotel.example"),
			WhatsAppNumber: getEnv("NOTIFICATIONS_WHATSAPP_NUMBER", ""),
		},
		Jobs: JobsConfig{
			ReminderInterval: getMinutesEnv("JOBS_REMINDER_INTERVAL_MINUTES", 60*time.Minute),
			ThankYouInterval: getMinutesEnv("JOBS_THANK_YOU_INTERVAL_MINUTES", 60*time.Minute),
			ReminderLeadTime: getMinutesEnv("JOBS_REMINDER_LEAD_TIME_MINUTES", 24*60*time.Minute),
			ThankYouLookback: getMinutesEnv("JOBS_THANK_YOU_LOOKBACK_MINUTES", 24*60*time.Minute),
			BatchSize:        int32(getIntEnv("JOBS_BATCH_SIZE", 100)),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getMinutesEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
