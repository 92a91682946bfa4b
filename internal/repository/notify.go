package repository

import "context"

// NotificationBus 把通知投递给指定用户，跨实例传播由实现负责。
type NotificationBus interface {
	Publish(ctx context.Context, userIDs []uint, payload []byte) error
}
