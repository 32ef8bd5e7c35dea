package webhooks

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrPoolFull is returned when the delivery queue is full.
	ErrPoolFull = errors.New("webhook delivery queue is full")
	// ErrPoolClosed is returned once the pool has been shut down.
	ErrPoolClosed = errors.New("webhook delivery pool is closed")
)

type task struct {
	ctx context.Context
	fn  func(context.Context)
}

// pool is a fixed set of workers reading from a bounded queue.
type pool struct {
	logger *zap.Logger

	taskCh   chan task
	workerWg sync.WaitGroup

	activeCount atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func newPool(workers, queueSize int, logger *zap.Logger) *pool {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &pool{
		logger: logger,
		taskCh: make(chan task, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < workers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	logger.Debug("webhook pool started",
		zap.Int("workers", workers),
		zap.Int("queueSize", queueSize))

	return p
}

func (p *pool) worker() {
	defer p.workerWg.Done()

	// Tasks still queued after a cancelled shutdown run with a done context
	// so they can settle quickly.
	for t := range p.taskCh {
		p.activeCount.Add(1)
		t.fn(t.ctx)
		p.activeCount.Add(-1)
	}
}

// submit queues fn without waiting for it to run. The task context is
// derived from the pool so deliveries outlive the request that caused them.
func (p *pool) submit(fn func(context.Context)) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.taskCh <- task{ctx: p.ctx, fn: fn}:
		return nil
	default:
		return ErrPoolFull
	}
}

// shutdown stops accepting tasks and waits for queued ones to finish. When
// ctx expires first the remaining tasks are cancelled.
func (p *pool) shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.taskCh)
	p.mu.Unlock()

	p.logger.Debug("webhook pool shutting down",
		zap.Int64("activeCount", p.activeCount.Load()),
		zap.Int("queuedCount", len(p.taskCh)))

	done := make(chan struct{})
	go func() {
		p.workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		p.logger.Warn("webhook pool shutdown timed out, cancelling deliveries")
		return ctx.Err()
	}
}
