// Package config holds the environment-backed configuration and the fixed
// workflow tunables of the complaint service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// Complaint numbers: DCW-<base36 millis>-<base36 random>, uppercased.
	NumberPrefix       = "DCW-"
	NumberSuffixLength = 5

	// Auth
	TokenTTL   = 7 * 24 * time.Hour
	BcryptCost = 12

	// Uploads
	MaxUploadBytes = 10 << 20 // 10 MB

	// Public status cache
	StatusCacheTTL = 5 * time.Minute

	// Submission rate limiting (per client IP)
	RateLimitWindow = 15 * time.Minute
	RateLimitMax    = 300
)

// AllowedMIMETypes lists the attachment content types accepted at upload.
var AllowedMIMETypes = []string{"image/jpeg", "image/png", "application/pdf", "text/plain"}

// Config is everything read from the environment at startup.
type Config struct {
	Port        string
	PostgresDSN string
	RedisAddr   string // empty disables cache and rate limiting
	RedisPass   string

	JWTSecret string

	UploadDir string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	TelegramBotToken string
	TelegramChatID   int64

	AdminEmail    string
	AdminPassword string
	AdminName     string

	CORSOrigins []string
}

// Load reads the configuration from the environment. godotenv is expected
// to have populated it from .env already (done in main).
func Load() Config {
	cfg := Config{
		Port:             getenv("PORT", "5000"),
		PostgresDSN:      getenv("POSTGRES_DSN", "host=localhost user=user password=password dbname=complaintwall port=5432 sslmode=disable"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        getenv("JWT_SECRET", "dev_secret_key_change_in_production"),
		UploadDir:        getenv("UPLOAD_DIR", "./uploads"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getenvInt("SMTP_PORT", 587),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		MailFrom:         getenv("EMAIL_FROM", "no-reply@digitalcomplaintwall.com"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   getenvInt64("TELEGRAM_CHAT_ID", 0),
		AdminEmail:       getenv("ADMIN_EMAIL", "admin@digitalcomplaintwall.com"),
		AdminPassword:    getenv("ADMIN_PASSWORD", "admin123"),
		AdminName:        getenv("ADMIN_NAME", "Administrator"),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:3000", "http://127.0.0.1:5173"}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
