package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NotFound 处理未匹配的路由
func NotFound(c *gin.Context) {
	NotFoundResponse(c)
}

// Recovery 把 panic 转换为统一的 500 文档
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logrus.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"panic": recovered,
		}).Error("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// AboutAuthor 是关于作者的静态页
func AboutAuthor(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": "About the author",
		"text":  "Yatube is written by a small team of people who like to blog.",
	})
}

// AboutTech 是关于技术栈的静态页
func AboutTech(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": "Technologies",
		"stack": []string{"Go", "Gin", "GORM", "Redis", "Asynq", "WebSocket"},
	})
}
