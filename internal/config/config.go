package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	DatabasePath string
	SiteDir      string

	// Admin authentication. AdminToken is the plaintext shared secret;
	// AdminTokenHash, when set, takes precedence and holds a bcrypt hash
	// so the plaintext never has to live in the environment.
	AdminToken     string
	AdminTokenHash string

	// Lockout policy for failed admin authentication attempts.
	LockoutThreshold int
	LockoutWindow    time.Duration
	LockoutDuration  time.Duration

	// Throttle for authenticated admin API traffic.
	AdminRequestLimit  int
	AdminRequestWindow time.Duration

	// Upload bounds.
	MaxUploadBytes int64

	// S3-compatible bucket for gallery images (R2, MinIO, ...).
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	// Comma-separated shoutrrr URLs notified on contact-form submissions
	// and pending-case reminders.
	NotifyURLs []string
}

// Load reads env vars and falls back to defaults so the server can boot with zero configuration.
// The admin token has no default: when neither DRI_ADMIN_TOKEN nor
// DRI_ADMIN_TOKEN_HASH is set, every admin request is denied.
func Load() (Config, error) {
	cfg := Config{
		Environment:  getEnv("DRI_ENV", "development"),
		HTTPPort:     getEnv("DRI_HTTP_PORT", "8080"),
		DatabasePath: getEnv("DRI_DB_PATH", filepath.Join("data", "gallery.db")),
		SiteDir:      getEnv("DRI_SITE_DIR", filepath.Clean(filepath.Join("..", "dist"))),

		AdminToken:     os.Getenv("DRI_ADMIN_TOKEN"),
		AdminTokenHash: os.Getenv("DRI_ADMIN_TOKEN_HASH"),

		LockoutThreshold: getEnvInt("DRI_LOCKOUT_THRESHOLD", 5),
		LockoutWindow:    getEnvDuration("DRI_LOCKOUT_WINDOW", 15*time.Minute),
		LockoutDuration:  getEnvDuration("DRI_LOCKOUT_DURATION", 30*time.Minute),

		AdminRequestLimit:  getEnvInt("DRI_ADMIN_REQUEST_LIMIT", 50),
		AdminRequestWindow: getEnvDuration("DRI_ADMIN_REQUEST_WINDOW", 15*time.Minute),

		MaxUploadBytes: int64(getEnvInt("DRI_MAX_UPLOAD_MB", 10)) * 1024 * 1024,

		S3Endpoint:  os.Getenv("DRI_S3_ENDPOINT"),
		S3Region:    getEnv("DRI_S3_REGION", "auto"),
		S3Bucket:    getEnv("DRI_S3_BUCKET", "dr-islam-gallery"),
		S3AccessKey: os.Getenv("DRI_S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("DRI_S3_SECRET_KEY"),
	}

	if raw := os.Getenv("DRI_NOTIFY_URLS"); raw != "" {
		for _, u := range strings.Split(raw, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.NotifyURLs = append(cfg.NotifyURLs, u)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

// HasAdminSecret reports whether any admin credential is configured.
func (c Config) HasAdminSecret() bool {
	return c.AdminToken != "" || c.AdminTokenHash != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}

	return fallback
}
