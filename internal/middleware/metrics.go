package middleware

import (
	"strconv"
	"time"

	"yatube/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 记录每个请求的路由、状态码和耗时。
// 未匹配路由的请求归入 "unmatched"，避免路径参数撑爆标签基数。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
