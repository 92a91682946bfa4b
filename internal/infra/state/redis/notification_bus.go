package redisstate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// notificationEnvelope 是频道上传递的消息格式
type notificationEnvelope struct {
	UserIDs []uint          `json:"user_ids"`
	Payload json.RawMessage `json:"payload"`
}

// RedisNotificationBus 通过 Redis Pub/Sub 在所有实例之间广播通知
type RedisNotificationBus struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisNotificationBus 创建 RedisNotificationBus 实例
func NewRedisNotificationBus(client *redis.Client, keyPrefix string) *RedisNotificationBus {
	if client == nil {
		panic("redis client cannot be nil for RedisNotificationBus")
	}
	if keyPrefix == "" {
		keyPrefix = "yt:"
	}
	return &RedisNotificationBus{client: client, keyPrefix: keyPrefix}
}

func (b *RedisNotificationBus) channel() string {
	return b.keyPrefix + "notify"
}

// Publish 把 payload 发布给 userIDs。payload 必须是合法 JSON。
func (b *RedisNotificationBus) Publish(ctx context.Context, userIDs []uint, payload []byte) error {
	if len(userIDs) == 0 {
		return nil
	}
	msg, err := json.Marshal(notificationEnvelope{UserIDs: userIDs, Payload: payload})
	if err != nil {
		return fmt.Errorf("redis: failed to marshal notification: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel(), msg).Err(); err != nil {
		return fmt.Errorf("redis: failed to publish notification to %s: %w", b.channel(), err)
	}
	return nil
}

// Subscribe 阻塞地读取通知并交给 deliver，直到 ctx 结束。
func (b *RedisNotificationBus) Subscribe(ctx context.Context, deliver func(userIDs []uint, payload []byte)) error {
	pubsub := b.client.Subscribe(ctx, b.channel())
	defer pubsub.Close()

	// 等待订阅确认
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redis: failed to subscribe to %s: %w", b.channel(), err)
	}
	log := logrus.WithFields(logrus.Fields{"component": "notification_bus", "channel": b.channel()})
	log.Info("Subscribed to notification channel")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			log.Info("Notification subscription stopped")
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env notificationEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.WithError(err).Warn("Dropping malformed notification message")
				continue
			}
			deliver(env.UserIDs, env.Payload)
		}
	}
}
