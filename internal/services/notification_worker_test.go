package services

import (
	"context"
	"sync"
	"time"

	"github.com/javajoker/orders-backend/internal/models"
	"github.com/javajoker/orders-backend/internal/queue"
)

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *recordingMailer) messages() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

func (suite *ServicesTestSuite) TestWorkerRendersOrderEmail() {
	user := suite.createUser("buyer@example.com", models.UserTypeBuyer)
	mailer := &recordingMailer{}
	worker := NewNotificationWorker(suite.db, suite.jobs, mailer)

	err := worker.Handle(suite.ctx, queue.NewJob(queue.JobOrderPlaced, user.ID, map[string]string{"order_id": "42"}))
	suite.Require().NoError(err)

	sent := mailer.messages()
	suite.Require().Len(sent, 1)
	suite.Equal("buyer@example.com", sent[0].to)
	suite.Equal("Order status update", sent[0].subject)
	suite.Contains(sent[0].body, "#42")
	suite.Contains(sent[0].body, "Test")
}

func (suite *ServicesTestSuite) TestWorkerRejectsUnknownJobs() {
	user := suite.createUser("buyer@example.com", models.UserTypeBuyer)
	worker := NewNotificationWorker(suite.db, suite.jobs, &recordingMailer{})

	err := worker.Handle(suite.ctx, queue.NewJob("unknown", user.ID, nil))
	suite.Error(err)

	err = worker.Handle(suite.ctx, queue.NewJob(queue.JobOrderPlaced, 999, nil))
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ServicesTestSuite) TestWorkerDeliversQueuedJobs() {
	mailer := &recordingMailer{}
	worker := NewNotificationWorker(suite.db, suite.jobs, mailer)

	ctx, cancel := context.WithCancel(suite.ctx)
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	_, err := suite.auth.Register(suite.ctx, suite.registerRequest())
	suite.Require().NoError(err)

	suite.Eventually(func() bool { return len(mailer.messages()) == 1 }, 2*time.Second, 10*time.Millisecond)
	suite.Equal("Confirm your email", mailer.messages()[0].subject)

	cancel()
	suite.NoError(<-done)
}
