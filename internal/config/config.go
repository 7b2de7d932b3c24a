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
	Port         string
	DatabaseURL  string
	AllowOrigins []string

	JWTSecret string
	JWTTTL    time.Duration

	PasswordResetTTL time.Duration
	FrontendBaseURL  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	LogstashTCPAddr string

	MinIOEndpoint     string
	MinIOAccessKey    string
	MinIOSecretKey    string
	MinIOUseSSL       bool
	MinIOBucketAvatar string
	MinIOPublicURL    string
	AvatarMaxBytes    int64

	RecaptchaProjectID string
	RecaptchaSiteKey   string
	RecaptchaMinScore  float64
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	smtpPort := 587
	if v, err := strconv.Atoi(getenv("SMTP_PORT", "587")); err == nil && v > 0 {
		smtpPort = v
	}

	avatarMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("AVATAR_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		avatarMax = v
	}

	minScore := 0.5
	if v, err := strconv.ParseFloat(getenv("RECAPTCHA_MIN_SCORE", "0.5"), 64); err == nil {
		minScore = v
	}

	return Config{
		Port:         getenv("PORT", "8080"),
		DatabaseURL:  must("DATABASE_URL"),
		AllowOrigins: splitAndTrim(getenv("ALLOW_ORIGINS", "*")),

		JWTSecret: must("JWT_SECRET"),
		JWTTTL:    duration("JWT_TTL", 24*time.Hour),

		PasswordResetTTL: duration("PASSWORD_RESET_TTL", time.Hour),
		FrontendBaseURL:  getenv("FRONTEND_BASE_URL", ""),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),

		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		MinIOEndpoint:     getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:    getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:    getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:       getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketAvatar: getenv("MINIO_BUCKET_AVATARS", "tektai-avatars"),
		MinIOPublicURL:    getenv("MINIO_PUBLIC_URL", ""),
		AvatarMaxBytes:    avatarMax,

		RecaptchaProjectID: getenv("RECAPTCHA_PROJECT_ID", ""),
		RecaptchaSiteKey:   getenv("RECAPTCHA_SITE_KEY", ""),
		RecaptchaMinScore:  minScore,
	}
}

func duration(k string, d time.Duration) time.Duration {
	raw := os.Getenv(k)
	if raw == "" {
		return d
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		log.Printf("Warning: invalid duration for %s: %q, using %s", k, raw, d)
		return d
	}
	return parsed
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
