package youtube

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/pkg/errors"
)

// quotaTracker counts Data API units for this process. The platform resets
// quotas at midnight Pacific time.
type quotaTracker struct {
	mu     sync.Mutex
	used   int
	limit  int
	reset  time.Time
	now    func() time.Time
	logger *zap.Logger
}

func newQuotaTracker(limit int, logger *zap.Logger) *quotaTracker {
	q := &quotaTracker{
		limit:  limit,
		now:    time.Now,
		logger: logger,
	}
	q.reset = nextQuotaReset(q.now())
	return q
}

func pacificLocation() *time.Location {
	if loc, err := time.LoadLocation("America/Los_Angeles"); err == nil {
		return loc
	}
	return time.FixedZone("PT", -8*60*60)
}

func nextQuotaReset(from time.Time) time.Time {
	pt := pacificLocation()
	now := from.In(pt)
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, pt)
}

// check fails with a QuotaError when cost would exceed the daily limit.
func (q *quotaTracker) check(cost int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	if now.After(q.reset) {
		q.used = 0
		q.reset = nextQuotaReset(now)
		q.logger.Info("YouTube API quota auto-reset",
			zap.Time("nextReset", q.reset))
	}

	if q.used+cost > q.limit {
		return errors.NewQuotaError(q.used, q.limit, cost)
	}
	return nil
}

func (q *quotaTracker) consume(cost int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.used += cost
	q.logger.Debug("YouTube API quota consumed",
		zap.Int("cost", cost),
		zap.Int("used", q.used),
		zap.Int("remaining", q.limit-q.used))
}

// status reports used units, remaining units and the next reset time.
func (q *quotaTracker) status() (int, int, time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.now().After(q.reset) {
		return 0, q.limit, nextQuotaReset(q.now())
	}
	return q.used, q.limit - q.used, q.reset
}
