package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longBuffer() *Buffer {
	// one minute of silence
	return &Buffer{SampleRate: 24000, Channels: 1, Samples: make([]float32, 24000*60)}
}

func TestSecondPlayStopsFirst(t *testing.T) {
	player := NewPlayer(nil)

	first := player.Play(longBuffer())
	second := player.Play(longBuffer())

	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatal("first playback was not stopped")
	}
	assert.True(t, first.Stopped())

	require.NotNil(t, player.Active())
	assert.Equal(t, second.ID, player.Active().ID)

	select {
	case <-second.Done():
		t.Fatal("second playback ended early")
	default:
	}

	player.Stop()
	<-second.Done()
	assert.True(t, second.Stopped())
	assert.Nil(t, player.Active())
}

func TestPlaybackCompletes(t *testing.T) {
	player := NewPlayer(nil)

	pb := player.Play(DecodePCM(make([]byte, 48))) // 1ms

	select {
	case <-pb.Done():
	case <-time.After(time.Second):
		t.Fatal("playback did not complete")
	}
	assert.False(t, pb.Stopped())
	assert.Nil(t, player.Active())
}

func TestStopWithoutPlayback(t *testing.T) {
	player := NewPlayer(nil)
	assert.NotPanics(t, player.Stop)
}
