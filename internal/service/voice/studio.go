package voice

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/audio"
	"github.com/kapu/socialintel-go/internal/service/ai"
	"github.com/kapu/socialintel-go/internal/util"
)

// Synthesizer produces raw 16-bit PCM speech.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, text, voice string) ai.Result[[]byte]
}

// Clip is a decoded utterance and its playback handle.
type Clip struct {
	Buffer   *audio.Buffer
	Playback *audio.Playback
}

// Studio keeps one player per session so a new line interrupts only that
// session's previous one. A session's player is released once nothing is
// playing on it.
type Studio struct {
	synth  Synthesizer
	logger *zap.Logger

	mu      sync.Mutex
	players map[string]*audio.Player
}

func NewStudio(synth Synthesizer, logger *zap.Logger) *Studio {
	return &Studio{
		synth:   synth,
		logger:  util.OrNop(logger),
		players: make(map[string]*audio.Player),
	}
}

// play starts buf on the session's player and releases the player when
// the clip ends without a successor.
func (s *Studio) play(session string, buf *audio.Buffer) *audio.Playback {
	s.mu.Lock()
	p, ok := s.players[session]
	if !ok {
		p = audio.NewPlayer(s.logger)
		s.players[session] = p
	}
	pb := p.Play(buf)
	s.mu.Unlock()

	go s.release(session, p, pb)
	return pb
}

func (s *Studio) release(session string, p *audio.Player, pb *audio.Playback) {
	<-pb.Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.players[session] == p && p.Active() == nil {
		delete(s.players, session)
	}
}

// Speak synthesizes text and plays it on the session's player.
func (s *Studio) Speak(ctx context.Context, session, text, voice string) (*Clip, error) {
	res := s.synth.SynthesizeSpeech(ctx, text, voice)
	if !res.OK() {
		return nil, res.Err
	}

	buf := audio.DecodePCM(res.Value)
	clip := &Clip{Buffer: buf, Playback: s.play(session, buf)}

	s.logger.Info("Voice line synthesized",
		zap.String("session", session),
		zap.String("voice", voice),
		zap.Duration("duration", buf.Duration()))
	return clip, nil
}

// PlayBase64 decodes a client-supplied PCM payload and plays it.
func (s *Studio) PlayBase64(session, payload string) (*Clip, error) {
	buf, err := audio.DecodeBase64PCM(payload)
	if err != nil {
		return nil, err
	}
	return &Clip{Buffer: buf, Playback: s.play(session, buf)}, nil
}

// Forget stops the session's active clip and drops its player. It reports
// whether the session had one.
func (s *Studio) Forget(session string) bool {
	s.mu.Lock()
	p, ok := s.players[session]
	delete(s.players, session)
	s.mu.Unlock()
	if ok {
		p.Stop()
	}
	return ok
}

// Sessions returns the number of sessions holding a player.
func (s *Studio) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}
