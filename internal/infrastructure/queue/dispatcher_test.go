package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/core/domain"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

type recordingDeliverer struct {
	mu        sync.Mutex
	delivered []ports.NotificationInput
	done      chan struct{}
	expect    int
}

func newRecordingDeliverer(expect int) *recordingDeliverer {
	return &recordingDeliverer{done: make(chan struct{}), expect: expect}
}

func (r *recordingDeliverer) Deliver(_ context.Context, input ports.NotificationInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delivered = append(r.delivered, input)
	if len(r.delivered) == r.expect {
		close(r.done)
	}
	return nil
}

func (r *recordingDeliverer) wait(t *testing.T) []ports.NotificationInput {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for deliveries")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.NotificationInput(nil), r.delivered...)
}

func TestDispatcher_DeliversAll(t *testing.T) {
	const n = 20
	deliverer := newRecordingDeliverer(n)
	d := NewDispatcher(3, deliverer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	for i := 0; i < n; i++ {
		d.Enqueue(ports.NotificationInput{
			UserID:  fmt.Sprintf("user_%d", i%5),
			Type:    domain.NotifyUpvote,
			Content: fmt.Sprintf("event %d", i),
		})
	}

	delivered := deliverer.wait(t)
	if len(delivered) != n {
		t.Fatalf("delivered %d of %d", len(delivered), n)
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	const n = 30
	deliverer := newRecordingDeliverer(n)
	d := NewDispatcher(4, deliverer, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	for i := 0; i < n; i++ {
		d.Enqueue(ports.NotificationInput{
			UserID:  "user_1",
			Content: fmt.Sprintf("%d", i),
		})
	}

	delivered := deliverer.wait(t)
	for i, input := range delivered {
		if input.Content != fmt.Sprintf("%d", i) {
			t.Fatalf("delivery %d out of order: got %q", i, input.Content)
		}
	}
}

func TestDispatcher_StopDrainsBuffered(t *testing.T) {
	const n = 50
	deliverer := newRecordingDeliverer(n)
	d := NewDispatcher(2, deliverer, zerolog.Nop())

	// Fill the buffers before any worker runs, then cancel the context
	// immediately: everything enqueued must still be delivered.
	for i := 0; i < n; i++ {
		d.Enqueue(ports.NotificationInput{
			UserID:  fmt.Sprintf("user_%d", i%7),
			Content: fmt.Sprintf("event %d", i),
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Stop()

	deliverer.mu.Lock()
	delivered := len(deliverer.delivered)
	deliverer.mu.Unlock()
	if delivered != n {
		t.Fatalf("Stop returned with %d of %d delivered", delivered, n)
	}

	// Late enqueues are dropped, not a panic on a closed channel.
	d.Enqueue(ports.NotificationInput{UserID: "user_1", Content: "late"})
	d.Stop()
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newRecordingDeliverer(0), zerolog.Nop())

	for _, id := range []string{"", "user_1", "user_2", "a-very-long-user-identifier"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for %q changed: %d vs %d", id, first, got)
			}
		}
		if first < 0 || first >= len(d.workers) {
			t.Fatalf("shard for %q out of range: %d", id, first)
		}
	}
}
