package audio

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64PCM(t *testing.T) {
	// 0, 16384, -16384, 32767 as little-endian int16
	raw := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0xC0, 0xFF, 0x7F}

	buf, err := DecodeBase64PCM(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)

	require.Len(t, buf.Samples, 4)
	assert.Equal(t, float32(0), buf.Samples[0])
	assert.Equal(t, float32(0.5), buf.Samples[1])
	assert.Equal(t, float32(-0.5), buf.Samples[2])
	assert.InDelta(t, 0.99997, buf.Samples[3], 1e-5)
	assert.Equal(t, 24000, buf.SampleRate)
	assert.Equal(t, 1, buf.Channels)
	assert.Equal(t, 4, buf.Frames())
}

func TestDecodePCMDropsTrailingByte(t *testing.T) {
	buf := DecodePCM([]byte{0x00, 0x40, 0x7F})
	require.Len(t, buf.Samples, 1)
	assert.Equal(t, float32(0.5), buf.Samples[0])
}

func TestDecodeEmptyPayload(t *testing.T) {
	buf, err := DecodeBase64PCM("")
	require.NoError(t, err)
	assert.Empty(t, buf.Samples)
	assert.Equal(t, 24000, buf.SampleRate)
	assert.Equal(t, time.Duration(0), buf.Duration())
}

func TestDecodeInvalidBase64(t *testing.T) {
	_, err := DecodeBase64PCM("not base64!!")
	assert.Error(t, err)
}

func TestBufferDuration(t *testing.T) {
	buf := DecodePCM(make([]byte, 48000)) // 24000 samples
	assert.Equal(t, time.Second, buf.Duration())
}
