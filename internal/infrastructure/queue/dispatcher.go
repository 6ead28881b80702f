package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/asklynk/qa-platform/internal/api/metrics"
	"github.com/asklynk/qa-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	deliverTimeout = 5 * time.Second
)

// Dispatcher fans notifications out to a fixed set of workers using
// consistent hashing on the recipient ID, guaranteeing per-user delivery
// ordering.
type Dispatcher struct {
	workers   []chan ports.NotificationInput
	deliverer ports.NotificationDeliverer
	log       zerolog.Logger
	wg        sync.WaitGroup
	stopped   atomic.Bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, deliverer ports.NotificationDeliverer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.NotificationInput, numWorkers),
		deliverer: deliverer,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop closes
// their channels.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop closes the worker channels and blocks until every buffered
// notification has been delivered. Safe to call more than once.
func (d *Dispatcher) Stop() {
	if !d.stopped.CompareAndSwap(false, true) {
		return
	}
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// Enqueue sends a notification to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity. Notifications
// enqueued after Stop are dropped.
func (d *Dispatcher) Enqueue(input ports.NotificationInput) {
	if d.stopped.Load() {
		d.log.Warn().Str("user_id", input.UserID).Msg("dispatcher stopped, dropping notification")
		return
	}
	idx := d.shardIndex(input.UserID)
	d.workers[idx] <- input
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationInput) {
	defer d.wg.Done()
	worker := strconv.Itoa(id)
	for input := range ch {
		metrics.NotificationQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))

		// Shutdown cancels ctx before the queue is drained; deliveries
		// still buffered must outlive it.
		deliverCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliverTimeout)
		err := d.deliverer.Deliver(deliverCtx, input)
		cancel()
		if err != nil {
			metrics.NotificationsErrorsTotal.WithLabelValues(string(input.Type)).Inc()
			d.log.Error().Err(err).
				Str("user_id", input.UserID).
				Int("worker_id", id).
				Msg("notification delivery failed")
			continue
		}
		metrics.NotificationsDeliveredTotal.WithLabelValues(string(input.Type)).Inc()
	}
}
