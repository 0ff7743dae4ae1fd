package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr         string
	BaseURL            string
	RateLimitPerMinute int

	// Storage
	DatabaseURL string
	RedisURL    string // optional; enables the report cache and shared limiter/session storage
	CacheTTL    time.Duration

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// AdminEmails are promoted to admin on login.
	AdminEmails []string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// API tokens
	TokenSecret string
	TokenTTL    time.Duration

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// SMTP
	SMTPEnabled      bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	SMTPFromName     string
	SMTPTLS          string // "none", "tls" or "starttls"
	DigestRecipients []string

	// Jobs
	ImportDir      string
	ImportSchedule string // cron expression, empty disables scheduled imports
	DigestSchedule string // cron expression, empty disables the weekly digest
	WarmInterval   time.Duration

	// Error reporting
	SentryDSN string

	// TrackedSite is the site whose keywords the dashboard reports on.
	TrackedSite string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		ServerAddr:         getEnv("SERVER_ADDR", ":3000"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:3000"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/seodash?sslmode=disable"),
		RedisURL:           getEnv("REDIS_URL", ""),
		CacheTTL:           getEnvDuration("CACHE_TTL", 15*time.Minute),
		TLSEnabled:         getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:        getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:         getEnv("TLS_KEY_FILE", ""),
		OIDCIssuer:         getEnv("OIDC_ISSUER", ""),
		OIDCClientID:       getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret:   getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:    getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		AdminEmails:        splitList(getEnv("ADMIN_EMAILS", "")),
		SessionSecret:      getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		TokenSecret:        getEnv("TOKEN_SECRET", ""),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 24*time.Hour),
		CORSOrigins:        getEnv("CORS_ORIGINS", ""),

		SMTPEnabled:      getEnv("SMTP_ENABLED", "") != "",
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:         getEnv("SMTP_FROM", ""),
		SMTPFromName:     getEnv("SMTP_FROM_NAME", "SEO Dashboard"),
		SMTPTLS:          getEnv("SMTP_TLS", "starttls"),
		DigestRecipients: splitList(getEnv("DIGEST_RECIPIENTS", "")),

		ImportDir:      getEnv("IMPORT_DIR", "data"),
		ImportSchedule: getEnv("IMPORT_SCHEDULE", ""),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", ""),
		WarmInterval:   getEnvDuration("WARM_INTERVAL", 10*time.Minute),

		SentryDSN:   getEnv("SENTRY_DSN", ""),
		TrackedSite: getEnv("TRACKED_SITE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsOIDCEnabled returns true if an OIDC provider is configured.
func (c *Config) IsOIDCEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS.
func (c *Config) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

// IsEmailEnabled returns true if SMTP is switched on and addressable.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}
