package hub

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client 代表一个连接到 Hub 的 WebSocket 客户端。
type Client struct {
	hub    *Hub            // 指向其所属的 Hub
	conn   *websocket.Conn // WebSocket 连接
	userID uint            // 客户端的用户 ID，通知按它投递
	send   chan []byte     // 用于向此客户端发送消息的缓冲通道
}

// NewClient 创建一个新的 Client 实例
func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
}

// Run 启动客户端的读写 goroutine
func (c *Client) Run() {
	go c.WritePump()
	go c.ReadPump()
}

// ReadPump 读取客户端发来的帧以处理 pong 和关闭，通知是单向的，文本消息被忽略。
// 它在自己的 goroutine 中运行。
func (c *Client) ReadPump() {
	logCtx := logrus.WithField("user_id", c.userID)
	defer func() {
		// 清理操作：请求 Hub 注销此客户端
		select {
		case c.hub.messageChan <- HubMessage{Type: "unregister", UserID: c.userID, Client: c}:
		case <-time.After(1 * time.Second): // Hub 已停止或阻塞时不再等待
			logCtx.Warn("Timeout sending unregister message to Hub channel")
		}
		c.conn.Close() // 关闭 WebSocket 连接
		logCtx.Debug("readPump exited")
	}()

	c.conn.SetReadLimit(maxMessageSize) // 设置最大消息大小
	// 设置初始读取超时和 Pong 处理程序
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait)) // 收到 Pong 后重置读取超时
		return nil
	})

	for {
		// 读到的内容直接丢弃，只关心连接是否还活着
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logCtx.WithError(err).Warn("WebSocket read error (unexpected close)")
			} else {
				logCtx.Debug("WebSocket connection closed")
			}
			return // 退出循环，触发 defer 中的注销
		}
	}
}

// WritePump 将消息从 send 通道写入 WebSocket 连接，并定期发送 Ping。
// 它在自己的 goroutine 中运行。
func (c *Client) WritePump() {
	logCtx := logrus.WithField("user_id", c.userID)
	// 创建一个定时器，用于定期发送 Ping 消息
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()  // 停止定时器
		c.conn.Close() // 关闭连接，ReadPump 随之退出并注销
		logCtx.Debug("writePump exited")
	}()

	for {
		select {
		case message, ok := <-c.send:
			// 设置写入超时
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// send 通道被 Hub 关闭了（注销或 Hub 停止）
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// 将通知写入 WebSocket 连接
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logCtx.WithError(err).Warn("Failed to write message to websocket")
				return
			}

		case <-ticker.C:
			// 定时发送 Ping，保持连接活跃并检测断开
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				// 发送 Ping 失败，通常意味着连接已断开
				logCtx.WithError(err).Warn("Failed to send ping message")
				return
			}
		}
	}
}

func (c *Client) UserID() uint { return c.userID }
func (c *Client) CloseConn()   { c.conn.Close() }
