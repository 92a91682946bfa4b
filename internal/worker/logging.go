package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// taskLogger 返回带有任务 ID、类型和重试次数的日志上下文
func taskLogger(ctx context.Context, t *asynq.Task) *logrus.Entry {
	taskID := ""
	// 直接用 asynq.NewTask 创建的任务没有 ResultWriter
	if rw := t.ResultWriter(); rw != nil {
		taskID = rw.TaskID()
	}
	currentRetry, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	return logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
		"retry":     currentRetry,
		"max_retry": maxRetry,
	})
}
