package audio

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/util"
)

// Playback is one started clip. Done is closed when it finishes or is stopped.
type Playback struct {
	ID       string
	Duration time.Duration
	Started  time.Time

	done    chan struct{}
	once    sync.Once
	timer   *time.Timer
	stopped bool
	mu      sync.Mutex
}

func (p *Playback) Done() <-chan struct{} {
	return p.done
}

// Stopped reports whether the playback was interrupted before its end.
func (p *Playback) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *Playback) finish(stopped bool) {
	p.once.Do(func() {
		p.mu.Lock()
		p.stopped = stopped
		if p.timer != nil {
			p.timer.Stop()
		}
		p.mu.Unlock()
		close(p.done)
	})
}

// Player keeps at most one active playback. Starting a new clip stops the
// previous one.
type Player struct {
	mu      sync.Mutex
	current *Playback
	logger  *zap.Logger
}

func NewPlayer(logger *zap.Logger) *Player {
	return &Player{logger: util.OrNop(logger)}
}

// Play starts buf and returns its handle.
func (pl *Player) Play(buf *Buffer) *Playback {
	pb := &Playback{
		ID:       uuid.NewString(),
		Duration: buf.Duration(),
		Started:  time.Now(),
		done:     make(chan struct{}),
	}

	pl.mu.Lock()
	prev := pl.current
	pl.current = pb
	pb.mu.Lock()
	pb.timer = time.AfterFunc(pb.Duration, func() { pl.complete(pb) })
	pb.mu.Unlock()
	pl.mu.Unlock()

	if prev != nil {
		prev.finish(true)
		pl.logger.Debug("Playback replaced",
			zap.String("stopped", prev.ID),
			zap.String("started", pb.ID),
		)
	}
	return pb
}

func (pl *Player) complete(pb *Playback) {
	pl.mu.Lock()
	if pl.current == pb {
		pl.current = nil
	}
	pl.mu.Unlock()
	pb.finish(false)
}

// Stop interrupts the active playback, if any.
func (pl *Player) Stop() {
	pl.mu.Lock()
	pb := pl.current
	pl.current = nil
	pl.mu.Unlock()

	if pb != nil {
		pb.finish(true)
	}
}

// Active returns the current playback or nil.
func (pl *Player) Active() *Playback {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.current
}
