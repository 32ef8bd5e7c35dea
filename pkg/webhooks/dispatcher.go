// Package webhooks delivers model lifecycle events to registered webhook
// targets over HTTP.
package webhooks

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"newsletter-admin-go/pkg/events"
	"newsletter-admin-go/pkg/models"
)

// Store is the subset of persistence the dispatcher needs.
type Store interface {
	ListWebhooksByEvent(ctx context.Context, event string) ([]models.Webhook, error)
	DeleteWebhook(ctx context.Context, id string) error
	RecordWebhookTrigger(ctx context.Context, id string, trigger models.WebhookTrigger) error
}

// Config tunes delivery.
type Config struct {
	Workers        int
	QueueSize      int
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	UserAgent      string
	ContentVersion string
}

// Dispatcher turns events into webhook deliveries run on a bounded pool.
type Dispatcher struct {
	store   Store
	sender  *Sender
	pool    *pool
	retry   RetryPolicy
	metrics *Metrics
	logger  *zap.Logger

	maxAttempts int

	mu       sync.Mutex
	inflight int
	idle     []chan struct{}
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMetrics records deliveries in m.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithRetryPolicy overrides the exponential policy built from Config.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(d *Dispatcher) { d.retry = p }
}

// NewDispatcher starts the delivery workers.
func NewDispatcher(store Store, cfg Config, logger *zap.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	d := &Dispatcher{
		store:       store,
		sender:      NewSender(cfg.Timeout, cfg.UserAgent, cfg.ContentVersion),
		retry:       ExponentialRetryPolicy{Initial: cfg.InitialBackoff, Max: cfg.MaxBackoff},
		logger:      logger,
		maxAttempts: cfg.MaxAttempts,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics == nil {
		d.metrics = NewMetrics(nil)
	}
	d.pool = newPool(cfg.Workers, cfg.QueueSize, logger)

	return d
}

// Subscribe registers the dispatcher on bus for every known event.
func (d *Dispatcher) Subscribe(bus *events.Bus) {
	for _, name := range models.KnownEvents {
		bus.Subscribe(name, d.Handle)
	}
}

// SetTransport replaces the HTTP transport used for deliveries; nil restores
// the default.
func (d *Dispatcher) SetTransport(rt http.RoundTripper) {
	d.sender.SetTransport(rt)
}

// Handle enqueues one delivery per webhook subscribed to event.Name. It
// returns once the deliveries are queued, not delivered.
func (d *Dispatcher) Handle(ctx context.Context, event events.Event) error {
	hooks, err := d.store.ListWebhooksByEvent(ctx, event.Name)
	if err != nil {
		return errors.Wrapf(err, "failed to load webhooks for %s", event.Name)
	}
	if len(hooks) == 0 {
		return nil
	}

	body, err := Serialize(event)
	if err != nil {
		de := newInvalidPayloadError(err)
		for _, hook := range hooks {
			d.drop(ctx, event.Name, hook, de)
		}
		return de
	}

	var queueErr error
	for _, hook := range hooks {
		d.begin()
		err := d.pool.submit(func(ctx context.Context) {
			defer d.end()
			d.deliver(ctx, event.Name, hook, body)
		})
		if err != nil {
			d.end()
			de := newQueueUnavailableError(err)
			d.drop(ctx, event.Name, hook, de)
			queueErr = de
		}
	}

	return queueErr
}

func (d *Dispatcher) deliver(ctx context.Context, event string, hook models.Webhook, body []byte) {
	started := time.Now()
	defer func() {
		d.metrics.latency.WithLabelValues(event).Observe(time.Since(started).Seconds())
	}()

	var (
		status int
		err    error
	)
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		d.metrics.attempts.WithLabelValues(event).Inc()
		status, err = d.sender.Send(ctx, hook, body)
		if err == nil {
			break
		}

		var de *DeliveryError
		if !errors.As(err, &de) || !de.IsRetryable() || attempt == d.maxAttempts {
			break
		}

		delay := d.retry.NextDelay(attempt)
		d.logger.Debug("webhook delivery failed, retrying",
			zap.String("event", event),
			zap.String("webhook", hook.ID),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			err = newCancelledError(ctx.Err())
		case <-time.After(delay):
			continue
		}
		break
	}

	d.finish(ctx, event, hook, status, err)
}

func (d *Dispatcher) finish(ctx context.Context, event string, hook models.Webhook, status int, err error) {
	// Bookkeeping must survive a cancelled delivery context.
	ctx = context.WithoutCancel(ctx)

	trigger := models.WebhookTrigger{At: time.Now().UTC(), Status: strconv.Itoa(status)}

	if err == nil {
		d.metrics.deliveries.WithLabelValues(event, OutcomeDelivered).Inc()
		d.logger.Debug("webhook delivered",
			zap.String("event", event),
			zap.String("webhook", hook.ID),
			zap.String("target", hook.TargetURL),
			zap.Int("status", status))
		d.record(ctx, hook, trigger)
		return
	}

	var de *DeliveryError
	if !errors.As(err, &de) {
		de = newNetworkError(err)
	}

	if de.Type == ErrorTypeGone {
		d.metrics.deliveries.WithLabelValues(event, OutcomeGone).Inc()
		d.logger.Info("webhook target gone, removing webhook",
			zap.String("event", event),
			zap.String("webhook", hook.ID),
			zap.String("target", hook.TargetURL))
		if err := d.store.DeleteWebhook(ctx, hook.ID); err != nil {
			d.logger.Error("failed to remove webhook", zap.String("webhook", hook.ID), zap.Error(err))
		}
		return
	}

	d.metrics.deliveries.WithLabelValues(event, OutcomeFailed).Inc()
	d.logger.Warn("webhook delivery failed",
		zap.String("event", event),
		zap.String("webhook", hook.ID),
		zap.String("target", hook.TargetURL),
		zap.Error(err))

	trigger.Status = de.Status()
	trigger.Error = de.UserMessage()
	d.record(ctx, hook, trigger)
}

// drop records a delivery that never reached the queue.
func (d *Dispatcher) drop(ctx context.Context, event string, hook models.Webhook, de *DeliveryError) {
	d.metrics.deliveries.WithLabelValues(event, OutcomeDropped).Inc()
	d.logger.Warn("webhook delivery dropped",
		zap.String("event", event),
		zap.String("webhook", hook.ID),
		zap.Error(de))
	d.record(context.WithoutCancel(ctx), hook, models.WebhookTrigger{
		At:     time.Now().UTC(),
		Status: de.Status(),
		Error:  de.UserMessage(),
	})
}

func (d *Dispatcher) record(ctx context.Context, hook models.Webhook, trigger models.WebhookTrigger) {
	if err := d.store.RecordWebhookTrigger(ctx, hook.ID, trigger); err != nil {
		d.logger.Error("failed to record webhook trigger",
			zap.String("webhook", hook.ID),
			zap.Error(err))
	}
}

func (d *Dispatcher) begin() {
	d.mu.Lock()
	d.inflight++
	d.mu.Unlock()
}

func (d *Dispatcher) end() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.inflight--
	if d.inflight == 0 {
		for _, ch := range d.idle {
			close(ch)
		}
		d.idle = nil
	}
}

// Flush blocks until every queued delivery has finished or ctx is done.
func (d *Dispatcher) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.inflight == 0 {
		d.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	d.idle = append(d.idle, ch)
	d.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting deliveries and drains the queue. Deliveries still
// running when ctx expires are cancelled.
func (d *Dispatcher) Close(ctx context.Context) error {
	return d.pool.shutdown(ctx)
}
