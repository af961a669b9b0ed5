// internal/services/notification_worker.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/models"
	"github.com/javajoker/orders-backend/internal/queue"
)

// NotificationWorker delivers queued notification jobs by email. A job that fails is
// logged and dropped; retries are left to whoever operates the queue.
type NotificationWorker struct {
	db     *gorm.DB
	queue  queue.Queue
	mailer Mailer
}

const dequeueRetryDelay = time.Second

type emailTemplate struct {
	Subject string
	Body    *template.Template
}

var emailTemplates = map[queue.JobType]emailTemplate{
	queue.JobUserRegistered: {
		Subject: "Confirm your email",
		Body: template.Must(template.New("user_registered").Parse(`<!DOCTYPE html>
<html>
<body>
	<h2>Welcome {{.Name}}!</h2>
	<p>Use this token to confirm your email address:</p>
	<p><b>{{.Token}}</b></p>
</body>
</html>`)),
	},
	queue.JobOrderPlaced: {
		Subject: "Order status update",
		Body: template.Must(template.New("order_placed").Parse(`<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Your order #{{.OrderID}} has been placed.</p>
</body>
</html>`)),
	},
	queue.JobPasswordReset: {
		Subject: "Password reset token",
		Body: template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Use this token to reset your password. It expires in one hour.</p>
	<p><b>{{.Token}}</b></p>
</body>
</html>`)),
	},
}

func NewNotificationWorker(db *gorm.DB, q queue.Queue, mailer Mailer) *NotificationWorker {
	return &NotificationWorker{
		db:     db,
		queue:  q,
		mailer: mailer,
	}
}

// Run consumes jobs until ctx is cancelled or the queue is closed.
func (w *NotificationWorker) Run(ctx context.Context) error {
	logrus.Info("Notification worker started")
	defer logrus.Info("Notification worker stopped")

	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			logrus.WithError(err).Error("Failed to dequeue notification")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(dequeueRetryDelay):
			}
			continue
		}

		if err := w.Handle(ctx, job); err != nil {
			logrus.WithFields(logrus.Fields{
				"job_id":   job.ID,
				"job_type": job.Type,
				"user_id":  job.UserID,
			}).WithError(err).Error("Failed to deliver notification")
		}
	}
}

// Handle renders and sends the email for a single job.
func (w *NotificationWorker) Handle(ctx context.Context, job queue.Job) error {
	tmpl, ok := emailTemplates[job.Type]
	if !ok {
		return fmt.Errorf("unknown job type %q", job.Type)
	}

	var user models.User
	if err := w.db.WithContext(ctx).First(&user, job.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	data := map[string]interface{}{
		"Name":    user.DisplayName(),
		"Token":   job.Data["token"],
		"OrderID": job.Data["order_id"],
	}

	var buf bytes.Buffer
	if err := tmpl.Body.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	if err := w.mailer.Send(ctx, user.Email, tmpl.Subject, buf.String()); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
