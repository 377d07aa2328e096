package jobs

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
)

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient constructs an Asynq client that enqueues on queue.
func NewClient(redisOpts asynq.RedisClientOpt, queue string) *Client {
	return &Client{client: asynq.NewClient(redisOpts), queue: queue}
}

// EnqueueImport enqueues a voucher import and returns the task id.
func (c *Client) EnqueueImport(ctx context.Context, payload ImportPayload) (string, error) {
	task, err := NewImportTask(payload)
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(10*time.Minute),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
