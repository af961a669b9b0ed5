// internal/services/notification_service.go
package services

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/orders-backend/internal/queue"
)

// NotificationService publishes notification jobs. Publishing never fails the caller:
// the operation that triggered the notification has already been committed.
type NotificationService struct {
	queue queue.Queue
}

func NewNotificationService(q queue.Queue) *NotificationService {
	return &NotificationService{queue: q}
}

func (s *NotificationService) UserRegistered(ctx context.Context, userID uint, token string) {
	s.emit(ctx, queue.NewJob(queue.JobUserRegistered, userID, map[string]string{"token": token}))
}

func (s *NotificationService) OrderPlaced(ctx context.Context, userID, orderID uint) {
	s.emit(ctx, queue.NewJob(queue.JobOrderPlaced, userID, map[string]string{
		"order_id": strconv.FormatUint(uint64(orderID), 10),
	}))
}

func (s *NotificationService) PasswordReset(ctx context.Context, userID uint, token string) {
	s.emit(ctx, queue.NewJob(queue.JobPasswordReset, userID, map[string]string{"token": token}))
}

func (s *NotificationService) emit(ctx context.Context, job queue.Job) {
	fields := logrus.Fields{
		"job_id":   job.ID,
		"job_type": job.Type,
		"user_id":  job.UserID,
	}

	if s == nil || s.queue == nil {
		logrus.WithFields(fields).Warn("Notification queue not configured, dropping job")
		return
	}

	// The request context may be cancelled right after the response is written.
	if err := s.queue.Enqueue(context.WithoutCancel(ctx), job); err != nil {
		logrus.WithFields(fields).WithError(err).Error("Failed to enqueue notification")
		return
	}

	logrus.WithFields(fields).Debug("Notification enqueued")
}
