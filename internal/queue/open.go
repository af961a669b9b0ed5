// internal/queue/open.go
package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/orders-backend/internal/config"
)

// Open returns a Redis backed queue when Redis is configured, otherwise an in-memory one.
// An in-memory queue is only useful when the worker runs in the same process.
func Open(ctx context.Context, cfg *config.Config) (Queue, error) {
	if !cfg.Redis.Enabled() {
		logrus.WithField("size", cfg.Notification.QueueSize).Info("Using in-memory notification queue")
		return NewMemoryQueue(cfg.Notification.QueueSize), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	q, err := NewRedisQueue(ctx, rdb, cfg.Redis.QueueKey)
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to open redis queue: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"addr": cfg.Redis.Addr(),
		"key":  cfg.Redis.QueueKey,
	}).Info("Using redis notification queue")
	return q, nil
}
