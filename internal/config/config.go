// Package config centraliza o carregamento de configurações da aplicação.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/extreamsys/contact-api/internal/core/domain"
)

type Config struct {
	Env         string
	Server      ServerConfig
	Storage     StorageConfig
	RateLimiter RateLimiterConfig
	Penalty     PenaltyConfig
	Turnstile   TurnstileConfig
	Email       EmailConfig
	Admission   AdmissionConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type StorageConfig struct {
	Type       string
	FailPolicy string
	Redis      RedisConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type RateLimiterConfig struct {
	Rules map[domain.Scope]domain.RateLimitRule
}

type PenaltyConfig struct {
	Threshold int
	TTL       time.Duration
}

type TurnstileConfig struct {
	SecretKey string
}

type EmailConfig struct {
	Token       string
	From        string
	ReplyTo     string
	NotifyEmail string
}

type AdmissionConfig struct {
	MaxBodyBytes int64
	AuditTTL     time.Duration
}

// IsDevelopment indica se detalhes de erro do verificador podem ir na resposta.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func Load() (Config, error) {
	_ = godotenv.Load()

	server := ServerConfig{
		Port:           getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	storage, err := buildStorageConfig()
	if err != nil {
		return Config{}, err
	}

	rateLimiter, err := buildRateLimiterConfig()
	if err != nil {
		return Config{}, err
	}

	penalty, err := buildPenaltyConfig()
	if err != nil {
		return Config{}, err
	}

	turnstile, err := buildTurnstileConfig()
	if err != nil {
		return Config{}, err
	}

	email, err := buildEmailConfig()
	if err != nil {
		return Config{}, err
	}

	admission, err := buildAdmissionConfig()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Env:         getEnv("APP_ENV", "production"),
		Server:      server,
		Storage:     storage,
		RateLimiter: rateLimiter,
		Penalty:     penalty,
		Turnstile:   turnstile,
		Email:       email,
		Admission:   admission,
	}, nil
}

func buildStorageConfig() (StorageConfig, error) {
	storageType := getEnv("STORAGE_TYPE", "redis")
	if storageType != "redis" && storageType != "memory" {
		return StorageConfig{}, fmt.Errorf("unsupported STORAGE_TYPE: %s", storageType)
	}

	failPolicy := getEnv("STORE_FAIL_POLICY", "open")
	if failPolicy != "open" && failPolicy != "closed" {
		return StorageConfig{}, fmt.Errorf("STORE_FAIL_POLICY must be open or closed: %s", failPolicy)
	}

	port, err := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	if err != nil {
		return StorageConfig{}, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return StorageConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	return StorageConfig{
		Type:       storageType,
		FailPolicy: failPolicy,
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     port,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       db,
		},
	}, nil
}

func buildRateLimiterConfig() (RateLimiterConfig, error) {
	rules := make(map[domain.Scope]domain.RateLimitRule, 3)

	defaults := []struct {
		scope         domain.Scope
		envPrefix     string
		requests      int
		windowMinutes int
	}{
		{domain.ScopeContact, "RATE_LIMIT_CONTACT", 5, 60},
		{domain.ScopeNewsletter, "RATE_LIMIT_NEWSLETTER", 3, 60},
		{domain.ScopeGlobal, "RATE_LIMIT_GLOBAL", 100, 15},
	}

	for _, def := range defaults {
		requests, err := strconv.Atoi(getEnv(def.envPrefix+"_REQUESTS", strconv.Itoa(def.requests)))
		if err != nil {
			return RateLimiterConfig{}, fmt.Errorf("invalid %s_REQUESTS: %w", def.envPrefix, err)
		}
		windowMinutes, err := strconv.Atoi(getEnv(def.envPrefix+"_WINDOW_MINUTES", strconv.Itoa(def.windowMinutes)))
		if err != nil {
			return RateLimiterConfig{}, fmt.Errorf("invalid %s_WINDOW_MINUTES: %w", def.envPrefix, err)
		}

		rules[def.scope] = domain.RateLimitRule{
			Requests: requests,
			Window:   time.Duration(windowMinutes) * time.Minute,
		}
	}

	return RateLimiterConfig{Rules: rules}, nil
}

func buildPenaltyConfig() (PenaltyConfig, error) {
	threshold, err := strconv.Atoi(getEnv("PENALTY_THRESHOLD", "3"))
	if err != nil {
		return PenaltyConfig{}, fmt.Errorf("invalid PENALTY_THRESHOLD: %w", err)
	}
	ttlMinutes, err := strconv.Atoi(getEnv("PENALTY_TTL_MINUTES", "60"))
	if err != nil {
		return PenaltyConfig{}, fmt.Errorf("invalid PENALTY_TTL_MINUTES: %w", err)
	}

	return PenaltyConfig{
		Threshold: threshold,
		TTL:       time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

func buildTurnstileConfig() (TurnstileConfig, error) {
	secret := strings.TrimSpace(os.Getenv("TURNSTILE_SECRET_KEY"))
	if secret == "" {
		return TurnstileConfig{}, fmt.Errorf("TURNSTILE_SECRET_KEY is required")
	}
	return TurnstileConfig{SecretKey: secret}, nil
}

func buildEmailConfig() (EmailConfig, error) {
	token := strings.TrimSpace(os.Getenv("POSTMARK_API_TOKEN"))
	if token == "" {
		return EmailConfig{}, fmt.Errorf("POSTMARK_API_TOKEN is required")
	}

	replyTo := getEnv("POSTMARK_REPLY_TO_EMAIL", "contact@extreamsys.com")

	return EmailConfig{
		Token:       token,
		From:        getEnv("POSTMARK_FROM_EMAIL", "noreply@extreamsys.com"),
		ReplyTo:     replyTo,
		NotifyEmail: getEnv("POSTMARK_NOTIFY_EMAIL", replyTo),
	}, nil
}

func buildAdmissionConfig() (AdmissionConfig, error) {
	maxBodyBytes, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "10000"), 10, 64)
	if err != nil {
		return AdmissionConfig{}, fmt.Errorf("invalid MAX_BODY_BYTES: %w", err)
	}
	auditTTLHours, err := strconv.Atoi(getEnv("AUDIT_TTL_HOURS", "24"))
	if err != nil {
		return AdmissionConfig{}, fmt.Errorf("invalid AUDIT_TTL_HOURS: %w", err)
	}

	return AdmissionConfig{
		MaxBodyBytes: maxBodyBytes,
		AuditTTL:     time.Duration(auditTTLHours) * time.Hour,
	}, nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
