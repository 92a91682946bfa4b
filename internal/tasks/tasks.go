// Package tasks 定义后台任务的类型和负载。
package tasks

import (
	"encoding/json"
	"fmt"
)

// 任务类型常量
const (
	TypePostFanout = "post:fanout" // 新帖子发布后通知关注者
	TypeImageSweep = "image:sweep" // 周期性清理不再被引用的图片
)

// 队列名称
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// PostFanoutPayload 是 post:fanout 任务的数据
type PostFanoutPayload struct {
	PostID   uint `json:"post_id"`
	AuthorID uint `json:"author_id"`
}

// NewPostFanoutTask 序列化 post:fanout 任务的负载
func NewPostFanoutTask(postID, authorID uint) ([]byte, error) {
	payload := PostFanoutPayload{PostID: postID, AuthorID: authorID}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return payloadBytes, nil
}

// ParsePostFanoutPayload 解析 post:fanout 任务的负载
func ParsePostFanoutPayload(data []byte) (PostFanoutPayload, error) {
	var p PostFanoutPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("unmarshal post fanout payload: %w", err)
	}
	if p.PostID == 0 {
		return p, fmt.Errorf("post fanout payload has no post_id")
	}
	return p, nil
}
