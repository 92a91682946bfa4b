package bootstrap

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example"})

	newReq := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "http://api.example/ws/follow", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	assert.True(t, check(newReq("")), "无 Origin 的请求放行")
	assert.True(t, check(newReq("https://app.example")))
	assert.True(t, check(newReq("http://api.example")), "同源请求放行")
	assert.False(t, check(newReq("https://evil.example")))

	assert.True(t, originChecker([]string{"*"})(newReq("https://any.example")))
}

func TestLoggerMiddleware_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	router := gin.New()
	router.Use(LoggerMiddleware(log))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok?page=2", nil))
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `"path":"/ok?page=2"`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	buf.Reset()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Contains(t, buf.String(), `"level":"warning"`)
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
}
