package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fsti-hub/internal/infrastructure/mailer"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Welcome
}

func (s *recordingSender) SendWelcome(_ context.Context, w mailer.Welcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, w)
	return nil
}

func TestMailQueue_DeliversBeforeStop(t *testing.T) {
	sender := &recordingSender{}
	q := NewMailQueue(sender, 2, nil)
	q.Start(context.Background())

	for _, to := range []string{"a@x.bi", "b@x.bi", "c@x.bi"} {
		if err := q.EnqueueWelcome(context.Background(), mailer.Welcome{To: to, Role: "talent"}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	q.Stop(stopCtx)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.sent) != 3 {
		t.Fatalf("expected 3 emails, got %d", len(sender.sent))
	}
}

func TestMailQueue_EnqueueNeverBlocks(t *testing.T) {
	sender := &recordingSender{}
	// Not started: nothing drains the buffer of 16.
	q := NewMailQueue(sender, 1, nil)

	var dropped int
	for i := 0; i < 20; i++ {
		done := make(chan error, 1)
		go func() { done <- q.EnqueueWelcome(context.Background(), mailer.Welcome{To: "a@x.bi", Role: "talent"}) }()
		select {
		case err := <-done:
			if errors.Is(err, ErrPoolFull) {
				dropped++
			} else if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		case <-time.After(time.Second):
			t.Fatalf("enqueue %d blocked on a full queue", i)
		}
	}
	if dropped != 4 {
		t.Fatalf("expected 4 dropped emails, got %d", dropped)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	start := time.Now()
	q.Stop(stopCtx)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Stop ignored its deadline: %v", elapsed)
	}
}
