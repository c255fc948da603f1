package worker

import (
	"context"
	"errors"

	"fsti-hub/internal/infrastructure/mailer"

	"go.uber.org/zap"
)

// MailQueue sends transactional email on a background pool so that request
// handlers never wait on SMTP.
type MailQueue struct {
	pool   *Pool
	sender mailer.Sender
	logger *zap.Logger
	done   chan struct{}
}

func NewMailQueue(sender mailer.Sender, workers int, logger *zap.Logger) *MailQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailQueue{
		pool:   NewPool(workers, workers*16),
		sender: sender,
		logger: logger.With(zap.String("component", "mail_queue")),
		done:   make(chan struct{}),
	}
}

// Start runs the workers until ctx is done or Stop drains the queue.
func (q *MailQueue) Start(ctx context.Context) {
	results := q.pool.Run(ctx)
	go func() {
		defer close(q.done)
		for r := range results {
			switch {
			case r.Err == nil:
				q.logger.Info("email sent", zap.String("task", r.Name), zap.Duration("took", r.Duration))
			case errors.Is(r.Err, mailer.ErrDisabled):
				q.logger.Debug("email skipped", zap.String("task", r.Name))
			default:
				q.logger.Error("email failed", zap.String("task", r.Name), zap.Error(r.Err))
			}
		}
	}()
}

// EnqueueWelcome queues a welcome email without waiting. When the queue is full
// or closed the email is dropped and the error returned.
func (q *MailQueue) EnqueueWelcome(_ context.Context, w mailer.Welcome) error {
	name := "welcome:" + w.Role + ":" + w.To
	err := q.pool.TrySubmit(name, func(ctx context.Context) error {
		return q.sender.SendWelcome(ctx, w)
	})
	if err != nil {
		q.logger.Warn("email dropped", zap.String("task", name), zap.Error(err))
	}
	return err
}

// Stop closes the queue and waits for queued emails or ctx, whichever is first.
func (q *MailQueue) Stop(ctx context.Context) {
	q.pool.Close()
	select {
	case <-q.done:
	case <-ctx.Done():
	}
}
