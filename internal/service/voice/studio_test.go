package voice

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/socialintel-go/internal/service/ai"
)

type fakeSynth struct {
	pcm []byte
	err error
}

func (f *fakeSynth) SynthesizeSpeech(_ context.Context, _, _ string) ai.Result[[]byte] {
	if f.err != nil {
		return ai.Result[[]byte]{Value: []byte{}, Err: f.err, Reason: ai.ReasonTransport}
	}
	return ai.Result[[]byte]{Value: f.pcm}
}

// oneSecond is 24000 frames of silence.
var oneSecond = make([]byte, 48000)

func TestSpeakStopsPreviousClipInSameSession(t *testing.T) {
	s := NewStudio(&fakeSynth{pcm: oneSecond}, nil)
	ctx := context.Background()

	first, err := s.Speak(ctx, "a", "Stop scrolling.", "Kore")
	require.NoError(t, err)
	assert.Equal(t, 24000, first.Buffer.Frames())
	assert.Equal(t, time.Second, first.Buffer.Duration())

	other, err := s.Speak(ctx, "b", "Another session.", "Kore")
	require.NoError(t, err)

	second, err := s.Speak(ctx, "a", "Wait for it.", "Puck")
	require.NoError(t, err)

	select {
	case <-first.Playback.Done():
	case <-time.After(time.Second):
		t.Fatal("first clip was not stopped")
	}
	assert.True(t, first.Playback.Stopped())

	select {
	case <-other.Playback.Done():
		t.Fatal("other session was interrupted")
	default:
	}
	assert.Equal(t, 2, s.Sessions())

	assert.True(t, s.Forget("a"))
	<-second.Playback.Done()
	assert.True(t, second.Playback.Stopped())
	assert.Equal(t, 1, s.Sessions())

	assert.True(t, s.Forget("b"))
	<-other.Playback.Done()
	assert.False(t, s.Forget("b"))
	assert.Equal(t, 0, s.Sessions())
}

func TestFinishedSessionsAreReleased(t *testing.T) {
	s := NewStudio(&fakeSynth{}, nil)
	payload := base64.StdEncoding.EncodeToString([]byte{0x00, 0x40, 0x00, 0xC0})

	clips := make([]*Clip, 0, 1000)
	for i := 0; i < 1000; i++ {
		clip, err := s.PlayBase64(fmt.Sprintf("session-%d", i), payload)
		require.NoError(t, err)
		clips = append(clips, clip)
	}
	for _, clip := range clips {
		<-clip.Playback.Done()
		assert.False(t, clip.Playback.Stopped())
	}

	assert.Eventually(t, func() bool { return s.Sessions() == 0 }, time.Second, 5*time.Millisecond)
}

func TestReplacedClipKeepsSession(t *testing.T) {
	s := NewStudio(&fakeSynth{pcm: oneSecond}, nil)
	ctx := context.Background()

	first, err := s.Speak(ctx, "a", "one", "Kore")
	require.NoError(t, err)
	_, err = s.Speak(ctx, "a", "two", "Kore")
	require.NoError(t, err)

	<-first.Playback.Done()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, s.Sessions())
	s.Forget("a")
}

func TestSpeakPropagatesSynthesisFailure(t *testing.T) {
	s := NewStudio(&fakeSynth{err: fmt.Errorf("quota exceeded")}, nil)

	clip, err := s.Speak(context.Background(), "a", "hi", "")
	assert.Nil(t, clip)
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Equal(t, 0, s.Sessions())
}

func TestPlayBase64(t *testing.T) {
	s := NewStudio(&fakeSynth{}, nil)

	payload := base64.StdEncoding.EncodeToString([]byte{0x00, 0x00, 0x00, 0x40, 0x00, 0xC0, 0xFF, 0x7F})
	clip, err := s.PlayBase64("a", payload)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0.5, -0.5, 32767.0 / 32768.0}, clip.Buffer.Samples)

	_, err = s.PlayBase64("a", "%%%")
	assert.Error(t, err)
	s.Forget("a")
}
