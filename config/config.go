package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	DBUrl       string
	FrontendURL string
	// Extra CORS origins on top of FrontendURL
	AllowedOrigins []string
	// Token configuration
	JWTSecret          string
	JWKSUrl            string // Optional, enables RS256 verification
	JWTIssuer          string // Required for RS256 tokens
	JWTAudience        string
	AccessTokenExpires time.Duration
	// Bootstrap admin
	FirstSuperuser         string
	FirstSuperuserPassword string
	// SMTP Configuration
	EmailsEnabled bool
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int
	// Object storage for profile images and company logos
	S3Provider        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	S3PublicBaseURL   string
	// Optional clamd address for scanning uploads
	ClamAVAddress string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", "local"),
		Port:           getEnv("PORT", "8080"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),
		// Tokens
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWKSUrl:            strings.TrimRight(getEnv("JWKS_URL", ""), "/"),
		JWTIssuer:          getEnv("JWT_ISSUER", ""),
		JWTAudience:        getEnv("JWT_AUDIENCE", ""),
		AccessTokenExpires: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24*8)) * time.Minute,
		// Bootstrap admin
		FirstSuperuser:         strings.ToLower(getEnv("FIRST_SUPERUSER", "")),
		FirstSuperuserPassword: getEnv("FIRST_SUPERUSER_PASSWORD", ""),
		// SMTP
		EmailsEnabled: getEnvBool("EMAILS_ENABLED", false),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@alumni.local"),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate limiting
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
		// Storage
		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Endpoint:        strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
		S3PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		ClamAVAddress:     getEnv("CLAMAV_ADDRESS", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Login will not be able to issue tokens.")
	}
	if cfg.JWKSUrl != "" && cfg.JWTIssuer == "" {
		log.Println("WARNING: JWKS_URL is set without JWT_ISSUER. RS256 tokens will be rejected.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// EmailConfigured reports whether notification emails can be sent.
func (c *Config) EmailConfigured() bool {
	return c.EmailsEnabled && c.SMTPHost != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
