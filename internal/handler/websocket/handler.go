package websocket

import (
	"net/http"

	"yatube/internal/hub"
	"yatube/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WebSocketHandler 负责把关注通知的 WebSocket 连接注册到 Hub
type WebSocketHandler struct {
	upgrader websocket.Upgrader
	hub      *hub.Hub
}

// NewWebSocketHandler 创建 WebSocketHandler 实例。
// checkOrigin 为 nil 时允许所有来源。
func NewWebSocketHandler(h *hub.Hub, checkOrigin func(r *http.Request) bool) *WebSocketHandler {
	if h == nil {
		panic("Hub cannot be nil for WebSocketHandler")
	}
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		hub: h,
	}
}

// HandleConnection 处理 /ws/follow 的连接请求，需要先经过 Auth 中间件
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		logrus.Warn("WS Handler: User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	logCtx := logrus.WithField("user_id", userID)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已经写出了 HTTP 错误响应
		logCtx.WithError(err).Error("WS Handler: Failed to upgrade connection")
		return
	}

	client := hub.NewClient(h.hub, conn, userID)
	if !h.hub.QueueMessage(hub.HubMessage{Type: "register", UserID: userID, Client: client}) {
		logCtx.Error("WS Handler: Hub message channel full, failed to register client")
		client.CloseConn()
		return
	}

	client.Run()
	logCtx.Info("WS Handler: Client connected for follow notifications")
}
