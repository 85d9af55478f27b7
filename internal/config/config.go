package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Chat         ChatConfig
	Notification NotificationConfig
	Redis        RedisConfig
	Postgres     PostgresConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	StaticDir             string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig carries the shared credential and chat-token settings. When
// APIKeyHash is set it takes precedence over APIKey and verification uses
// bcrypt; otherwise a constant-time comparison against APIKey is used.
type AuthConfig struct {
	APIKey              string
	APIKeyHash          string
	JWTSecret           string
	ChatTokenTTLMinutes int
}

// ChatConfig tunes the dialogue surfaces.
type ChatConfig struct {
	NotificationQueueSize int
	TicketCacheTTLHours   int
}

// NotificationConfig describes the outbound notification request target.
// Delivery itself is an external collaborator; the worker only formats
// and hands off.
type NotificationConfig struct {
	EmailFrom  string
	ManagerTo  string
	WebhookURL string
}

// RedisConfig holds Redis connection values for the ticket cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds connection values for the optional ticket archive.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "chatbot-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			StaticDir:             getEnv("APP_STATIC_DIR", "./gui"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			APIKey:              getEnv("AUTH_API_KEY", "SECRET123"),
			APIKeyHash:          os.Getenv("AUTH_API_KEY_HASH"),
			JWTSecret:           getEnv("AUTH_JWT_SECRET", "dev-secret"),
			ChatTokenTTLMinutes: getEnvAsInt("AUTH_CHAT_TOKEN_TTL_MINUTES", 60),
		},
		Chat: ChatConfig{
			NotificationQueueSize: getEnvAsInt("CHAT_NOTIFICATION_QUEUE_SIZE", 64),
			TicketCacheTTLHours:   getEnvAsInt("CHAT_TICKET_CACHE_TTL_HOURS", 24),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			ManagerTo:  getEnv("NOTIFY_MANAGER_TO", "manager@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the ticket cache expiry.
func (c ChatConfig) CacheTTL() time.Duration {
	if c.TicketCacheTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TicketCacheTTLHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
