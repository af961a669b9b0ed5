package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueue stores jobs in a Redis list: producers LPUSH, consumers BRPOP.
type RedisQueue struct {
	rdb         *redis.Client
	key         string
	pollTimeout time.Duration
}

func NewRedisQueue(ctx context.Context, rdb *redis.Client, key string) (*RedisQueue, error) {
	if rdb == nil {
		return nil, errors.New("redis client must be non-nil")
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis is not reachable: %w", err)
	}
	return &RedisQueue{
		rdb:         rdb,
		key:         key,
		pollTimeout: 5 * time.Second,
	}, nil
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push job: %w", err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Job{}, err
		}

		res, err := q.rdb.BRPop(ctx, q.pollTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if errors.Is(err, redis.ErrClosed) {
			return Job{}, ErrClosed
		}
		if err != nil {
			return Job{}, fmt.Errorf("failed to pop job: %w", err)
		}

		// res is [key, value]
		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			return Job{}, fmt.Errorf("failed to decode job: %w", err)
		}
		return job, nil
	}
}

func (q *RedisQueue) Close() error {
	return q.rdb.Close()
}
