package mirror

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"pipeline_backend/platform/config"
)

// Client enqueues mirror tasks onto the Redis-backed queue.
type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.MirrorConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetMirrorQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, err := c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

func (c *Client) EnqueueLeadSnapshot(ctx context.Context, payload LeadSnapshotPayload) error {
	task, err := NewLeadSnapshotTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) EnqueueLeadPurge(ctx context.Context, payload LeadPurgePayload) error {
	task, err := NewLeadPurgeTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) EnqueueProfileSync(ctx context.Context, payload ProfileSyncPayload) error {
	task, err := NewProfileSyncTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task)
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
