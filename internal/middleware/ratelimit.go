package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimit 返回一个 Gin 中间件，按客户端 IP 限制写请求的频率。
// redisClient: 用于存储计数器的 Redis 客户端实例，必须提供。
// keyPrefix: 与其他 Redis 键共用的前缀。
// maxRequests: 在 window 内允许的最大请求数。
// 只统计会修改数据的请求，GET 和 HEAD 直接放行。
func RateLimit(redisClient *redis.Client, keyPrefix string, maxRequests int, window time.Duration) gin.HandlerFunc {
	// 启动时检查依赖
	if redisClient == nil {
		panic("Redis client cannot be nil for RateLimit middleware")
	}
	if maxRequests <= 0 {
		panic("maxRequests must be positive for RateLimit middleware")
	}
	if window <= 0 {
		panic("window duration must be positive for RateLimit middleware")
	}

	return func(c *gin.Context) {
		// 浏览页面不计数
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		// 使用客户端 IP 作为限流键的一部分
		// 注意：在反向代理后面时需要配置 gin 的可信代理，ClientIP 才是真实 IP
		key := keyPrefix + "ratelimit:" + c.ClientIP()

		// INCR 和 EXPIRE 放在同一个 Pipeline 中执行
		pipe := redisClient.Pipeline()
		incrCmd := pipe.Incr(ctx, key) // 计数 +1
		pipe.Expire(ctx, key, window)  // 设置/刷新过期时间
		if _, err := pipe.Exec(ctx); err != nil {
			// redis 不可用时放行，限流不能影响正常访问
			logrus.WithError(err).Error("RateLimit: Redis Pipeline failed")
			c.Next()
			return
		}

		// 获取 INCR 命令的结果
		count := incrCmd.Val()
		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))

		// 检查请求次数是否超过限制
		if count > int64(maxRequests) {
			logrus.WithField("client_ip", c.ClientIP()).Warn("RateLimit: Too many requests")
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(maxRequests)-count, 10))
		c.Next() // 未超限，继续处理请求
	}
}
