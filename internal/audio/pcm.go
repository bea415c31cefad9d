// Package audio decodes speech payloads returned by the generative API and
// tracks their playback.
package audio

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/kapu/socialintel-go/internal/constants"
)

// Buffer holds normalized samples in [-1, 1).
type Buffer struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames returns the number of sample frames per channel.
func (b *Buffer) Frames() int {
	if b == nil || b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration is the playback length at SampleRate.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// DecodeBase64PCM decodes a base64 payload of signed 16-bit little-endian
// mono PCM at 24 kHz.
func DecodeBase64PCM(payload string) (*Buffer, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode audio payload: %w", err)
	}
	return DecodePCM(raw), nil
}

// DecodePCM converts raw little-endian int16 samples to floats. A trailing
// odd byte is dropped.
func DecodePCM(raw []byte) *Buffer {
	n := len(raw) / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(v) / 32768.0
	}
	return &Buffer{
		SampleRate: constants.AudioConfig.SampleRate,
		Channels:   constants.AudioConfig.Channels,
		Samples:    samples,
	}
}
