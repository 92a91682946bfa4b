package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// RawJSONResponse 直接写出已经序列化好的 JSON
func RawJSONResponse(c *gin.Context, code int, payload []byte) {
	c.Data(code, "application/json; charset=utf-8", payload)
}

// RedirectResponse 返回 302，Location 指向 location，响应体说明跳转目标
func RedirectResponse(c *gin.Context, location string, extra gin.H) {
	body := gin.H{"redirect": location}
	for k, v := range extra {
		body[k] = v
	}
	c.Header("Location", location)
	c.JSON(http.StatusFound, body)
}

// NotFoundResponse 返回统一的 404 文档
func NotFoundResponse(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "page not found", "path": c.Request.URL.Path})
}
