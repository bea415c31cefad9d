package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/socialintel-go/internal/domain"
)

type recordingSink struct {
	mu       sync.Mutex
	batches  [][]domain.AnalyticsEvent
	attempts int
	largest  int
	err      error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Send(_ context.Context, batch []domain.AnalyticsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if len(batch) > s.largest {
		s.largest = len(batch)
	}
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, batch)
	return nil
}

func TestTrackerFlushesAtBatchSize(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 10, nil)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		require.NoError(t, tr.Track(ctx, domain.EventFeatureUsage, fmt.Sprintf("tool-%d", i), nil))
	}
	assert.Equal(t, 9, tr.Len())
	assert.Empty(t, sink.batches)

	require.NoError(t, tr.Track(ctx, domain.EventButtonClick, "tool-9", nil))
	assert.Equal(t, 0, tr.Len())
	require.Len(t, sink.batches, 1)
	assert.Len(t, sink.batches[0], 10)
	assert.Equal(t, "tool-0", sink.batches[0][0].Label)
}

func TestTrackerStampsEvents(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 10, nil)
	tr.now = func() time.Time { return time.UnixMilli(1700000000123) }

	require.NoError(t, tr.Track(context.Background(), domain.EventPageView, "dashboard", map[string]any{"tab": "overview"}))
	require.NoError(t, tr.Flush(context.Background()))

	_, err := uuid.Parse(tr.SessionID())
	require.NoError(t, err)

	e := sink.batches[0][0]
	assert.Equal(t, domain.EventPageView, e.Event)
	assert.Equal(t, int64(1700000000123), e.Timestamp)
	assert.Equal(t, tr.SessionID(), e.SessionID)
	assert.Equal(t, "overview", e.Properties["tab"])
}

func TestTrackerRequeuesOnFailure(t *testing.T) {
	sink := &recordingSink{err: fmt.Errorf("down")}
	tr := NewTracker(sink, 2, nil)
	clock := time.Unix(1700000000, 0)
	tr.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, tr.Track(ctx, domain.EventAPICall, "a", nil))
	assert.Error(t, tr.Track(ctx, domain.EventAPICall, "b", nil))
	assert.Equal(t, 2, tr.Len())

	sink.err = nil
	clock = clock.Add(tr.backoff)
	require.NoError(t, tr.Track(ctx, domain.EventAPICall, "c", nil))

	require.Len(t, sink.batches, 1)
	labels := make([]string, 0, 3)
	for _, e := range sink.batches[0] {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{"a", "b", "c"}, labels)
}

func TestTrackerCapsBacklogWhileSinkFails(t *testing.T) {
	sink := &recordingSink{err: fmt.Errorf("redis: connection refused")}
	tr := NewTracker(sink, 10, nil)
	clock := time.Unix(1700000000, 0)
	tr.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 5000; i++ {
		_ = tr.Track(ctx, domain.EventFeatureUsage, fmt.Sprintf("e-%d", i), nil)
	}

	assert.Equal(t, 1, sink.attempts, "auto flush must pause during backoff")
	assert.Equal(t, 100, tr.Len())
	assert.Equal(t, 4900, tr.Dropped())

	// Backoff over: the next full queue retries once with the capped backlog.
	clock = clock.Add(tr.backoff)
	assert.Error(t, tr.Track(ctx, domain.EventFeatureUsage, "late", nil))
	assert.Equal(t, 2, sink.attempts)
	assert.Equal(t, 100, sink.largest)

	// An explicit flush ignores the backoff and keeps the newest events.
	sink.err = nil
	require.NoError(t, tr.Flush(ctx))
	require.Len(t, sink.batches, 1)
	batch := sink.batches[0]
	assert.Len(t, batch, 100)
	assert.Equal(t, "late", batch[len(batch)-1].Label)
	assert.Equal(t, "e-4901", batch[0].Label)
	assert.Equal(t, 0, tr.Len())
}

func TestTrackerFlushEmptyQueue(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 0, nil)

	require.NoError(t, tr.Flush(context.Background()))
	assert.Empty(t, sink.batches)
	assert.Equal(t, 10, tr.batchSize)
}

func TestTrackerConcurrentTrack(t *testing.T) {
	sink := &recordingSink{}
	tr := NewTracker(sink, 10, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tr.Track(context.Background(), domain.EventFeatureUsage, "x", nil)
		}()
	}
	wg.Wait()
	require.NoError(t, tr.Flush(context.Background()))

	total := 0
	for _, b := range sink.batches {
		total += len(b)
	}
	assert.Equal(t, 50, total)
}

type fakePublisher struct {
	channel string
	payload []byte
	err     error
}

func (p *fakePublisher) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	p.channel = channel
	p.payload, _ = message.([]byte)
	return redis.NewIntResult(1, p.err)
}

func TestRedisSinkPublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	sink := NewRedisSink(pub, "socialintel:analytics", nil)

	batch := []domain.AnalyticsEvent{{Event: domain.EventAuth, Label: "login", Timestamp: 1, SessionID: "s"}}
	require.NoError(t, sink.Send(context.Background(), batch))

	assert.Equal(t, "socialintel:analytics", pub.channel)
	var decoded []domain.AnalyticsEvent
	require.NoError(t, json.Unmarshal(pub.payload, &decoded))
	assert.Equal(t, batch, decoded)
}

func TestRedisSinkError(t *testing.T) {
	sink := NewRedisSink(&fakePublisher{err: fmt.Errorf("connection refused")}, "c", nil)
	err := sink.Send(context.Background(), []domain.AnalyticsEvent{{Label: "x"}})
	assert.ErrorContains(t, err, "connection refused")
}

func TestNopAndLogSinks(t *testing.T) {
	batch := []domain.AnalyticsEvent{{Event: domain.EventPageView, Label: "home"}}
	assert.NoError(t, NopSink{}.Send(context.Background(), batch))
	assert.NoError(t, NewLogSink(nil).Send(context.Background(), batch))
}
