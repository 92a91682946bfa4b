package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"yatube/internal/infra/setup"
)

// feed 缓存后端
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// Config 结构体用于存储从环境变量或文件加载的配置
type Config struct {
	DB                 setup.DBOptions
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	KeyPrefix          string // Redis Key 前缀
	JWTSecret          string
	JWTExpiryHours     int
	ServerPort         string
	LogLevel           string
	AppEnv             string // development/production
	FeedCacheTTL       time.Duration
	FeedCacheBackend   string
	MediaRoot          string
	CORSAllowedOrigins []string
	RateLimitMax       int
	RateLimitWindow    time.Duration
	ImageSweepSchedule string
}

// LoadConfig 从环境变量加载配置，.env 文件存在时先加载它
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // 忽略错误，允许只使用环境变量

	cfg := &Config{
		DB: setup.DBOptions{
			Driver:   envOr("DB_DRIVER", setup.DriverMySQL),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     envOr("DB_HOST", "localhost"),
			Port:     os.Getenv("DB_PORT"),
			Name:     envOr("DB_NAME", "yatube"),
		},
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:          envOr("REDIS_KEY_PREFIX", "yt:"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		ServerPort:         envOr("SERVER_PORT", "8080"),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		AppEnv:             envOr("APP_ENV", "development"),
		FeedCacheBackend:   envOr("FEED_CACHE_BACKEND", CacheBackendRedis),
		MediaRoot:          envOr("MEDIA_ROOT", "media"),
		CORSAllowedOrigins: splitList(envOr("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		ImageSweepSchedule: envOr("IMAGE_SWEEP_SCHEDULE", "@every 1h"),
	}

	if cfg.DB.Port == "" {
		if cfg.DB.Driver == setup.DriverPostgres {
			cfg.DB.Port = "5432"
		} else {
			cfg.DB.Port = "3306"
		}
	}

	var err error
	if cfg.RedisDB, err = envInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.JWTExpiryHours, err = envInt("JWT_EXPIRY_HOURS", 24); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = envInt("RATE_LIMIT_MAX", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = envDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.FeedCacheTTL, err = envDuration("FEED_CACHE_TTL", 20*time.Second); err != nil {
		return nil, err
	}

	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}
	if cfg.DB.Driver != setup.DriverMySQL && cfg.DB.Driver != setup.DriverPostgres {
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", setup.DriverMySQL, setup.DriverPostgres, cfg.DB.Driver)
	}
	if cfg.FeedCacheBackend != CacheBackendRedis && cfg.FeedCacheBackend != CacheBackendMemory {
		return nil, fmt.Errorf("FEED_CACHE_BACKEND must be %q or %q, got %q", CacheBackendRedis, CacheBackendMemory, cfg.FeedCacheBackend)
	}
	if cfg.FeedCacheTTL <= 0 {
		return nil, fmt.Errorf("FEED_CACHE_TTL must be positive")
	}

	// 验证日志级别
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a duration like 20s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
