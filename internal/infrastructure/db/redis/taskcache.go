package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/donelist/task-service/internal/api/metrics"
	"github.com/donelist/task-service/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// TaskCache caches an owner's full task list as a JSON blob.
// Key format: tasks:<owner_id>
type TaskCache struct {
	client *redis.Client
}

// NewTaskCache creates a TaskCache wrapping the given Redis client.
func NewTaskCache(client *redis.Client) *TaskCache {
	return &TaskCache{client: client}
}

// GetList returns the cached list for ownerID, or (nil, nil) on a miss.
func (c *TaskCache) GetList(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	raw, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var tasks []*domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		// A corrupt entry is as good as a miss; drop it.
		_ = c.client.Del(ctx, c.key(ownerID)).Err()
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
	return tasks, nil
}

// SetList stores the owner's task list, expiring after cacheTTL.
func (c *TaskCache) SetList(ctx context.Context, ownerID string, tasks []*domain.Task) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	if err := c.client.Set(ctx, c.key(ownerID), raw, cacheTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the owner's cached list after any write to their tasks.
func (c *TaskCache) Invalidate(ctx context.Context, ownerID string) error {
	if err := c.client.Del(ctx, c.key(ownerID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *TaskCache) key(ownerID string) string {
	return "tasks:" + ownerID
}
