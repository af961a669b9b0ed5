// Package queue carries notification jobs from the request path to the mail worker.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrClosed is returned by Dequeue once the queue has been closed and drained.
var ErrClosed = errors.New("queue closed")

type JobType string

const (
	JobUserRegistered JobType = "user_registered"
	JobOrderPlaced    JobType = "order_placed"
	JobPasswordReset  JobType = "password_reset"
)

type Job struct {
	ID        string            `json:"id"`
	Type      JobType           `json:"type"`
	UserID    uint              `json:"user_id"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewJob(jobType JobType, userID uint, data map[string]string) Job {
	return Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		UserID:    userID,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks until a job is available, ctx is done or the queue is closed.
	Dequeue(ctx context.Context) (Job, error)
	Close() error
}
