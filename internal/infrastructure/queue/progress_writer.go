// Package queue provides the asynchronous progress-write path.
package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusign/edusign-api/internal/api/metrics"
	"github.com/edusign/edusign-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second

	opBootstrap = "bootstrap"
	opTouch     = "touch"
)

type progressOp struct {
	op     string
	userID string
	at     time.Time
}

// ProgressDispatcher decorates a ports.ProgressRepository with fire-and-forget
// semantics: writes are enqueued and always "succeed" from the caller's view,
// with failures logged and counted by the worker. Ops are sharded by user id
// with consistent hashing, so a bootstrap and a touch for the same account
// apply in order.
type ProgressDispatcher struct {
	workers []chan progressOp
	repo    ports.ProgressRepository
	log     zerolog.Logger
}

var _ ports.ProgressRepository = (*ProgressDispatcher)(nil)

// NewProgressDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewProgressDispatcher(numWorkers int, repo ports.ProgressRepository, log zerolog.Logger) *ProgressDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &ProgressDispatcher{
		workers: make([]chan progressOp, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan progressOp, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *ProgressDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Bootstrap enqueues the signup-time progress creation and reports success
// immediately. The call is non-blocking up to channelBuffer capacity.
func (d *ProgressDispatcher) Bootstrap(_ context.Context, userID string, now time.Time) error {
	d.enqueue(progressOp{op: opBootstrap, userID: userID, at: now})
	return nil
}

// Touch enqueues the login-time activity update and reports success
// immediately.
func (d *ProgressDispatcher) Touch(_ context.Context, userID string, now time.Time) error {
	d.enqueue(progressOp{op: opTouch, userID: userID, at: now})
	return nil
}

func (d *ProgressDispatcher) enqueue(op progressOp) {
	d.workers[d.shardIndex(op.userID)] <- op
}

// shardIndex maps a user id deterministically to a worker index.
func (d *ProgressDispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *ProgressDispatcher) runWorker(ctx context.Context, id int, ch <-chan progressOp) {
	for {
		select {
		case <-ctx.Done():
			return
		case op, ok := <-ch:
			if !ok {
				return
			}
			d.apply(op, id)
		}
	}
}

func (d *ProgressDispatcher) apply(op progressOp, workerID int) {
	// The originating request is long gone; each write gets its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var err error
	switch op.op {
	case opBootstrap:
		err = d.repo.Bootstrap(ctx, op.userID, op.at)
	case opTouch:
		err = d.repo.Touch(ctx, op.userID, op.at)
	}
	if err != nil {
		d.log.Warn().Err(err).
			Str("user_id", op.userID).
			Str("op", op.op).
			Int("worker_id", workerID).
			Msg("async progress write failed")
		metrics.ProgressWriteFailuresTotal.WithLabelValues(op.op).Inc()
	}
}
