package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 支持的数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DBOptions 描述数据库连接参数
type DBOptions struct {
	Driver   string
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// DSN 根据驱动构建连接字符串
func (o DBOptions) DSN() (string, error) {
	switch o.Driver {
	case DriverMySQL, "":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			o.User, o.Password, o.Host, o.Port, o.Name), nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			o.Host, o.Port, o.User, o.Password, o.Name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", o.Driver)
	}
}

// InitDB 打开数据库连接并配置连接池
func InitDB(opts DBOptions) (*gorm.DB, error) {
	dsn, err := opts.DSN()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	if opts.Driver == DriverPostgres {
		dialector = postgres.Open(dsn)
	} else {
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB() // 获取底层的 *sql.DB 对象
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	logrus.WithField("driver", opts.Driver).Info("Database connected")
	return db, nil
}

// InitRedis 初始化 Redis 连接并检查连通性
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxConnAge:   30 * time.Minute,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	logrus.Info("Redis connected")
	return client, nil
}
