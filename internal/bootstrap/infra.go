package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"yatube/internal/infra/setup"
	memorystate "yatube/internal/infra/state/memory"
	redisstate "yatube/internal/infra/state/redis"
	"yatube/internal/repository"
)

// NewLogger 按运行环境创建 logger，并让 logrus 全局 logger 使用相同配置
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	var formatter logrus.Formatter
	if cfg.AppEnv == "production" {
		formatter = &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	} else {
		formatter = &logrus.TextFormatter{FullTimestamp: true, ForceColors: true}
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel) // cfg.LogLevel 已被 LoadConfig 验证
	log.SetFormatter(formatter)
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)

	// service 和 repository 层使用 logrus 全局函数
	logrus.SetFormatter(formatter)
	logrus.SetLevel(logLevel)
	logrus.SetOutput(os.Stdout)
	return log
}

// OpenDB 打开数据库连接，migrate 为 true 时执行迁移
func OpenDB(cfg *Config, migrate bool) (*gorm.DB, error) {
	db, err := setup.InitDB(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if migrate {
		if err := setup.MigrateDB(db); err != nil {
			return nil, fmt.Errorf("failed to migrate DB: %w", err)
		}
	}
	return db, nil
}

// OpenRedis 创建 Redis 客户端并检查连通性
func OpenRedis(cfg *Config) (*redis.Client, error) {
	client, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	return client, nil
}

// AsynqRedisOpt 返回 asynq 使用的 Redis 连接参数
func AsynqRedisOpt(cfg *Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// NewFeedCache 根据 FEED_CACHE_BACKEND 选择缓存实现
func NewFeedCache(cfg *Config, redisClient *redis.Client) repository.FeedCache {
	if cfg.FeedCacheBackend == CacheBackendMemory {
		return memorystate.NewFeedCache(memorystate.DefaultSize, cfg.FeedCacheTTL)
	}
	return redisstate.NewRedisFeedCache(redisClient, cfg.KeyPrefix, cfg.FeedCacheTTL)
}

// closeDB 关闭底层连接池
func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
