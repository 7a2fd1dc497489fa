package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL string // Required: Postgres connection string
	JWTSecret   string // Required: base64-encoded HMAC secret for tokens
	RedisURL    string // Optional: moderation verdict cache, disabled when empty

	ResendAPIKey    string // Optional: confirmation emails log to stdout when empty
	MailSender      string // Optional: From address for confirmation emails
	TurnstileSecret string // Optional unless captcha is enabled
	OpenAIAPIKey    string // Optional unless moderation is enabled

	CORSAllowedOrigins []string // Optional: origin regexps, allows localhost by default

	SkipEmailVerification bool // Accounts activate immediately, no email sent
	SkipCaptcha           bool // Captcha tokens are not required or checked
	SkipModeration        bool // Content is published without a moderation pass
	SkipRateLimiting      bool // Per-route rate limits are disabled

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired confirmation code sweep interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisURL:    os.Getenv("REDIS_URL"),

		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		MailSender:      getEnvOrDefault("MAIL_SENDER", "Conduit <noreply@conduit.local>"),
		TurnstileSecret: os.Getenv("TURNSTILE_SECRET"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),

		SkipEmailVerification: getEnvBool("SKIP_EMAIL_VERIFICATION"),
		SkipCaptcha:           getEnvBool("SKIP_CAPTCHA"),
		SkipModeration:        getEnvBool("SKIP_MODERATION"),
		SkipRateLimiting:      getEnvBool("SKIP_RATE_LIMITING"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	// Comma-separated origin regexps, e.g. "https://.*\.example\.com,http://localhost:.*"
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
			}
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{`https?://localhost(:\d+)?`}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func getEnvBool(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && value
}
