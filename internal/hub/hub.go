// Package hub 维护 websocket 客户端，并把关注通知推送给在线用户。
package hub

import (
	"context"
	"sync"
	"time"

	"yatube/internal/metrics"

	"github.com/sirupsen/logrus"
)

// 包级别的 WebSocket 常量，供 hub 和 client 使用
const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// 客户端只发送控制帧，不需要大的读缓冲
	maxMessageSize = 512

	// 每个客户端的发送缓冲，满了之后新消息被丢弃
	sendBufferSize = 64
)

// HubMessage 定义了在 Hub 内部通道传递的消息类型
type HubMessage struct {
	Type   string // "register", "unregister"
	UserID uint
	Client *Client
}

// Subscriber 是通知来源，redisstate.RedisNotificationBus 满足此接口
type Subscriber interface {
	Subscribe(ctx context.Context, deliver func(userIDs []uint, payload []byte)) error
}

// Hub 维护在线客户端集合，按用户 ID 组织。一个用户可以有多个连接。
type Hub struct {
	messageChan chan HubMessage // 注册与注销请求，由 Run 串行处理

	// map[userID]map[*Client]bool
	users   map[uint]map[*Client]bool
	usersMu sync.RWMutex

	subscriber Subscriber         // 通知来源，可以为 nil
	cancel     context.CancelFunc // 由 Stop 调用，结束 Run
	done       chan struct{}      // Run 退出后关闭
}

// NewHub 创建并返回一个新的 Hub 实例。subscriber 为 nil 时只能通过 Deliver 推送。
func NewHub(subscriber Subscriber) *Hub {
	return &Hub{
		messageChan: make(chan HubMessage, 256),
		users:       make(map[uint]map[*Client]bool),
		subscriber:  subscriber,
		done:        make(chan struct{}),
	}
}

// Run 启动 Hub 的主事件处理循环，以及通知订阅。
// 它应该在一个单独的 goroutine 中运行，直到 Stop 被调用。
func (h *Hub) Run() {
	log := logrus.WithField("component", "hub")
	log.Info("Hub is running...")

	ctx, cancel := context.WithCancel(context.Background())
	h.usersMu.Lock()
	h.cancel = cancel
	h.usersMu.Unlock()

	// 订阅在单独的 goroutine 中进行
	if h.subscriber != nil {
		go h.subscribe(ctx, log)
	}

	for {
		select {
		case msg := <-h.messageChan:
			switch msg.Type {
			case "register":
				h.registerClient(msg.Client)
			case "unregister":
				h.unregisterClient(msg.Client)
			default:
				log.Warnf("Hub: Received unknown message type: %s from user %d", msg.Type, msg.UserID)
			}
		case <-ctx.Done():
			// 收到停止信号，关闭所有客户端后退出
			h.closeAll()
			log.Info("Hub is shutting down...")
			close(h.done)
			return
		}
	}
}

// subscribe 保持通知订阅，断开后重试
func (h *Hub) subscribe(ctx context.Context, log *logrus.Entry) {
	backoff := time.Second
	for {
		err := h.subscriber.Subscribe(ctx, h.Deliver)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.WithError(err).Warnf("Notification subscription failed, retrying in %s", backoff)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		// 指数退避，最多 30 秒
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

// Stop 停止订阅并关闭所有客户端
func (h *Hub) Stop() {
	h.usersMu.RLock()
	cancel := h.cancel
	h.usersMu.RUnlock()
	if cancel == nil {
		return
	}
	cancel()
	<-h.done
}

func (h *Hub) registerClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to register a nil client")
		return
	}
	userID := client.UserID()

	h.usersMu.Lock()
	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[*Client]bool)
	}
	h.users[userID][client] = true
	h.usersMu.Unlock()

	metrics.ConnectedClients.Inc()
	logrus.WithField("user_id", userID).Info("Client registered to Hub")
}

func (h *Hub) unregisterClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to unregister a nil client")
		return
	}
	userID := client.UserID()
	logCtx := logrus.WithField("user_id", userID)

	h.usersMu.Lock()
	defer h.usersMu.Unlock()

	userClients, ok := h.users[userID]
	if !ok || !userClients[client] {
		logCtx.Debug("Client already unregistered")
		return
	}
	delete(userClients, client)
	// 关闭 send 通道，WritePump 随之退出
	close(client.send)
	if len(userClients) == 0 {
		delete(h.users, userID)
	}
	metrics.ConnectedClients.Dec()
	logCtx.Info("Client unregistered from Hub")
}

func (h *Hub) closeAll() {
	h.usersMu.Lock()
	defer h.usersMu.Unlock()
	for userID, userClients := range h.users {
		for client := range userClients {
			close(client.send)
			metrics.ConnectedClients.Dec()
		}
		delete(h.users, userID)
	}
}

// Deliver 把 payload 推送给 userIDs 在本实例上的所有连接。
// 发送是非阻塞的，缓冲区满的慢客户端会丢失这条消息。
func (h *Hub) Deliver(userIDs []uint, payload []byte) {
	h.usersMu.RLock()
	defer h.usersMu.RUnlock()

	delivered := 0
	for _, userID := range userIDs {
		for client := range h.users[userID] {
			select {
			case client.send <- payload:
				delivered++
			default:
				logrus.WithField("user_id", userID).Warn("Client send channel full, dropping notification")
			}
		}
	}
	if delivered > 0 {
		metrics.NotificationsDelivered.Add(float64(delivered))
		logrus.WithFields(logrus.Fields{
			"recipients": len(userIDs),
			"delivered":  delivered,
		}).Debug("Notification delivered to clients")
	}
}

// ConnectedUsers 返回当前在线的用户数
func (h *Hub) ConnectedUsers() int {
	h.usersMu.RLock()
	defer h.usersMu.RUnlock()
	return len(h.users)
}

// QueueMessage 将消息放入 Hub 的处理队列 (非阻塞)。
// 返回 false 表示队列已满。
func (h *Hub) QueueMessage(msg HubMessage) bool {
	select {
	case h.messageChan <- msg:
		return true
	default:
		logrus.WithFields(logrus.Fields{
			"message_type": msg.Type,
			"user_id":      msg.UserID,
		}).Warn("Hub message channel full, dropping message")
		return false
	}
}
