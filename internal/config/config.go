package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Embedding EmbeddingConfig
	Cache     CacheConfig
	Search    SearchConfig
	Auth      AuthConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	Platform    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type EmbeddingConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type CacheConfig struct {
	MaxSize       int
	TTL           time.Duration
	SweepInterval time.Duration
}

type SearchConfig struct {
	PerSkillTimeout time.Duration
	MinThreshold    float64
	DetailedResults bool
	QuotaStrategy   bool
}

type AuthConfig struct {
	AdminJWTSecret string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		Platform:    opt("COURSE_PLATFORM", "coursera"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST", "localhost"),
		DBPort:         opt("DB_PORT", "5432"),
		DBName:         opt("DB_NAME", ""),
		DBUser:         opt("DB_USER", ""),
		DBPassword:     opt("DB_PASSWORD", ""),
		DBSSLMode:      opt("DB_SSL_MODE", "disable"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT_SECONDS", 5*time.Second),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:   int32(optInt("DB_POOL_MIN_CONNS", 0)),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      optDuration("REDIS_TTL_SECONDS", 7*24*time.Hour),
	}

	cfg.Embedding = EmbeddingConfig{
		BaseURL: opt("EMBEDDING_BASE_URL", ""),
		Model:   opt("EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout: optDuration("EMBEDDING_TIMEOUT_SECONDS", 10*time.Second),
	}

	cfg.Cache = CacheConfig{
		MaxSize:       optInt("COURSE_CACHE_MAX_SIZE", 1000),
		TTL:           optDuration("COURSE_CACHE_TTL_SECONDS", 6*time.Hour),
		SweepInterval: optDuration("COURSE_CACHE_SWEEP_SECONDS", time.Hour),
	}

	cfg.Search = SearchConfig{
		PerSkillTimeout: optDuration("COURSE_SEARCH_TIMEOUT_SECONDS", 3*time.Second),
		MinThreshold:    optFloat("COURSE_MIN_THRESHOLD", 0.30),
		DetailedResults: optBool("COURSE_DETAILED_RESULTS", true),
		QuotaStrategy:   optBool("COURSE_QUOTA_STRATEGY", true),
	}

	cfg.Auth = AuthConfig{
		AdminJWTSecret: opt("ADMIN_JWT_SECRET", ""),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func optFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func optBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func optDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
