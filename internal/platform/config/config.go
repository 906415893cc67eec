package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the portal needs from the environment so main
// stays lean. Every field has a development default; production overrides via
// env vars.
type Config struct {
	Addr string

	// PostgresURL is empty in development, which selects in-memory stores.
	PostgresURL string

	// RedisURL is empty in development, which selects in-memory draft and
	// receipt stores.
	RedisURL string

	// DraftTTL bounds how long an abandoned draft survives.
	DraftTTL time.Duration
	// ReceiptTTL bounds how long a document submission receipt is shown on
	// the confirmation view.
	ReceiptTTL time.Duration
	// LookupCacheTTL bounds the reference-number lookup cache.
	LookupCacheTTL time.Duration

	// Blob storage (S3-compatible). Empty endpoint selects in-memory blobs.
	BlobEndpoint  string
	BlobAccessKey string
	BlobSecretKey string
	BlobBucket    string
	BlobUseSSL    bool

	// EmailJS transactional email service.
	EmailServiceID  string
	EmailTemplateID string
	EmailPublicKey  string
	EmailBaseURL    string

	// PortalBaseURL is the public origin used in email links.
	PortalBaseURL string

	// Rate limiting for login and document upload, per client IP.
	RateLimit  int
	RateWindow time.Duration

	// Admin auth.
	AdminJWTSigningKey string
	AdminUsername      string
	// AdminPasswordHash is a bcrypt hash of the admin password.
	AdminPasswordHash string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:           getenv("PORTAL_ADDR", ":8080"),
		PostgresURL:    os.Getenv("PORTAL_POSTGRES_URL"),
		RedisURL:       os.Getenv("PORTAL_REDIS_URL"),
		DraftTTL:       getenvDuration("PORTAL_DRAFT_TTL", 30*24*time.Hour),
		ReceiptTTL:     getenvDuration("PORTAL_RECEIPT_TTL", 7*24*time.Hour),
		LookupCacheTTL: getenvDuration("PORTAL_LOOKUP_CACHE_TTL", 5*time.Minute),

		BlobEndpoint:  os.Getenv("PORTAL_BLOB_ENDPOINT"),
		BlobAccessKey: os.Getenv("PORTAL_BLOB_ACCESS_KEY"),
		BlobSecretKey: os.Getenv("PORTAL_BLOB_SECRET_KEY"),
		BlobBucket:    getenv("PORTAL_BLOB_BUCKET", "registration-documents"),
		BlobUseSSL:    getenvBool("PORTAL_BLOB_USE_SSL", true),

		EmailServiceID:  os.Getenv("PORTAL_EMAILJS_SERVICE_ID"),
		EmailTemplateID: os.Getenv("PORTAL_EMAILJS_TEMPLATE_ID"),
		EmailPublicKey:  os.Getenv("PORTAL_EMAILJS_PUBLIC_KEY"),
		EmailBaseURL:    getenv("PORTAL_EMAILJS_BASE_URL", "https://api.emailjs.com"),

		PortalBaseURL: getenv("PORTAL_BASE_URL", "http://localhost:8080"),

		RateLimit:  getenvInt("PORTAL_RATE_LIMIT", 30),
		RateWindow: getenvDuration("PORTAL_RATE_WINDOW", time.Minute),

		// Defaults are for development only; override in production.
		AdminJWTSigningKey: getenv("PORTAL_ADMIN_JWT_KEY", "dev-secret-key-change-in-production"),
		AdminUsername:      getenv("PORTAL_ADMIN_USERNAME", "admin"),
		AdminPasswordHash:  os.Getenv("PORTAL_ADMIN_PASSWORD_HASH"),
	}
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

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
