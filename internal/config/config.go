package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rahmatrdn/uclboard/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	StatsBaseURL               string
	StatsTimeout               time.Duration
	StatsMaxRetries            int
	StatsCircuitEnabled        bool
	StatsCircuitFailureCount   int
	StatsCircuitOpenTimeout    time.Duration
	StatsCircuitHalfOpenMaxReq int
	SessionCookieName          string
	LoginURL                   string
	AdminRateLimitPerSecond    float64
	AdminRateLimitBurst        int
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	statsTimeout, err := time.ParseDuration(getEnv("STATS_TIMEOUT", "8s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_TIMEOUT: %w", err)
	}
	if statsTimeout <= 0 {
		return Config{}, fmt.Errorf("STATS_TIMEOUT must be > 0")
	}

	statsMaxRetries, err := getEnvAsInt("STATS_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_MAX_RETRIES: %w", err)
	}
	if statsMaxRetries < 0 {
		return Config{}, fmt.Errorf("STATS_MAX_RETRIES must be >= 0")
	}

	statsCircuitEnabled, err := strconv.ParseBool(getEnv("STATS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_CIRCUIT_ENABLED: %w", err)
	}

	statsCircuitFailureCount, err := getEnvAsInt("STATS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if statsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("STATS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	statsCircuitOpenTimeout, err := time.ParseDuration(getEnv("STATS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if statsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("STATS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	statsCircuitHalfOpenMaxReq, err := getEnvAsInt("STATS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if statsCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("STATS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	adminRatePerSecond, err := getEnvAsFloat("ADMIN_RATE_LIMIT_PER_SECOND", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ADMIN_RATE_LIMIT_PER_SECOND: %w", err)
	}
	if adminRatePerSecond <= 0 {
		return Config{}, fmt.Errorf("ADMIN_RATE_LIMIT_PER_SECOND must be > 0")
	}

	adminRateBurst, err := getEnvAsInt("ADMIN_RATE_LIMIT_BURST", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse ADMIN_RATE_LIMIT_BURST: %w", err)
	}
	if adminRateBurst < 1 {
		return Config{}, fmt.Errorf("ADMIN_RATE_LIMIT_BURST must be >= 1")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "uclboard-web"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":3000"),
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		StatsBaseURL:               strings.TrimSpace(getEnv("STATS_BASE_URL", "http://localhost:8080")),
		StatsTimeout:               statsTimeout,
		StatsMaxRetries:            statsMaxRetries,
		StatsCircuitEnabled:        statsCircuitEnabled,
		StatsCircuitFailureCount:   statsCircuitFailureCount,
		StatsCircuitOpenTimeout:    statsCircuitOpenTimeout,
		StatsCircuitHalfOpenMaxReq: statsCircuitHalfOpenMaxReq,
		SessionCookieName:          strings.TrimSpace(getEnv("SESSION_COOKIE_NAME", "JSESSIONID")),
		LoginURL:                   strings.TrimSpace(getEnv("LOGIN_URL", "/oauth2/authorization/google")),
		AdminRateLimitPerSecond:    adminRatePerSecond,
		AdminRateLimitBurst:        adminRateBurst,
		LogLevel:                   parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if cfg.StatsBaseURL == "" {
		return Config{}, fmt.Errorf("STATS_BASE_URL cannot be empty")
	}
	if cfg.SessionCookieName == "" {
		return Config{}, fmt.Errorf("SESSION_COOKIE_NAME cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
