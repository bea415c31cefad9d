package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/constants"
	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/util"
)

// Tracker queues interaction events and hands them to a Sink in batches.
// While the sink is failing the backlog is capped at maxQueued, oldest
// events dropped first, and Track stops flushing until the backoff ends.
type Tracker struct {
	sink      Sink
	batchSize int
	maxQueued int
	backoff   time.Duration
	sessionID string
	now       func() time.Time
	logger    *zap.Logger

	mu      sync.Mutex
	queue   []domain.AnalyticsEvent
	retryAt time.Time
	dropped int
	// flushing counts sends in progress; Track leaves the queue to them.
	flushing int
}

// NewTracker returns a tracker with a fresh session id. A nil sink discards
// batches; batchSize <= 0 uses the default of 10.
func NewTracker(sink Sink, batchSize int, logger *zap.Logger) *Tracker {
	if sink == nil {
		sink = NopSink{}
	}
	if batchSize <= 0 {
		batchSize = constants.AnalyticsConfig.BatchSize
	}
	t := &Tracker{
		sink:      sink,
		batchSize: batchSize,
		maxQueued: batchSize * constants.AnalyticsConfig.MaxQueuedBatches,
		backoff:   constants.AnalyticsConfig.RetryBackoff,
		sessionID: uuid.NewString(),
		now:       time.Now,
		logger:    util.OrNop(logger),
		queue:     make([]domain.AnalyticsEvent, 0, batchSize),
	}
	t.logger.Debug("Analytics tracker initialized",
		zap.String("session_id", t.sessionID),
		zap.String("sink", sink.Name()),
		zap.Int("batch_size", batchSize))
	return t
}

func (t *Tracker) SessionID() string {
	return t.sessionID
}

// Len returns the number of queued events.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

// Dropped returns how many events were discarded to respect the backlog cap.
func (t *Tracker) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropped
}

// trimLocked drops the oldest events beyond maxQueued and returns how many.
func (t *Tracker) trimLocked() int {
	over := len(t.queue) - t.maxQueued
	if over <= 0 {
		return 0
	}
	kept := make([]domain.AnalyticsEvent, t.maxQueued, t.maxQueued+t.batchSize)
	copy(kept, t.queue[over:])
	t.queue = kept
	t.dropped += over
	return over
}

// Track queues one event and flushes once the batch is full, unless a
// failed flush is still backing off.
func (t *Tracker) Track(ctx context.Context, kind domain.EventType, label string, props map[string]any) error {
	event := domain.AnalyticsEvent{
		Event:      kind,
		Label:      label,
		Properties: props,
		Timestamp:  t.now().UnixMilli(),
		SessionID:  t.sessionID,
	}

	t.mu.Lock()
	t.queue = append(t.queue, event)
	dropped := t.trimLocked()
	full := len(t.queue) >= t.batchSize && t.flushing == 0 && !t.now().Before(t.retryAt)
	t.mu.Unlock()

	t.logger.Debug("Analytics event tracked",
		zap.String("event", string(kind)),
		zap.String("label", label))
	if dropped > 0 {
		t.logger.Debug("Analytics backlog full, oldest events dropped", zap.Int("dropped", dropped))
	}

	if full {
		return t.Flush(ctx)
	}
	return nil
}

// Flush sends every queued event regardless of backoff. On sink failure
// the batch goes back ahead of events tracked in the meantime and
// automatic flushing pauses for the backoff period.
func (t *Tracker) Flush(ctx context.Context) error {
	t.mu.Lock()
	if len(t.queue) == 0 {
		t.mu.Unlock()
		return nil
	}
	batch := t.queue
	t.queue = make([]domain.AnalyticsEvent, 0, t.batchSize)
	t.flushing++
	t.mu.Unlock()

	if err := t.sink.Send(ctx, batch); err != nil {
		t.mu.Lock()
		t.flushing--
		t.queue = append(batch, t.queue...)
		dropped := t.trimLocked()
		queued := len(t.queue)
		total := t.dropped
		t.retryAt = t.now().Add(t.backoff)
		t.mu.Unlock()

		t.logger.Warn("Analytics flush failed, batch re-queued",
			zap.String("sink", t.sink.Name()),
			zap.Int("batch", len(batch)),
			zap.Int("queued", queued),
			zap.Int("dropped", dropped),
			zap.Int("dropped_total", total),
			zap.Duration("backoff", t.backoff),
			zap.Error(err))
		return err
	}

	t.mu.Lock()
	t.flushing--
	t.retryAt = time.Time{}
	t.mu.Unlock()

	t.logger.Debug("Analytics batch flushed",
		zap.String("sink", t.sink.Name()),
		zap.Int("events", len(batch)))
	return nil
}
