package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWAVHeader(t *testing.T) {
	buf := DecodePCM([]byte{0x00, 0x00, 0x00, 0x40, 0x00, 0xC0})
	wav := EncodeWAV(buf)

	require.Len(t, wav, 44+6)
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, uint32(36+6), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[20:22]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(wav[34:36]))
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(6), binary.LittleEndian.Uint32(wav[40:44]))
}

func TestEncodeWAVRoundTripsSamples(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0xC0, 0xFF, 0x7F}
	wav := EncodeWAV(DecodePCM(raw))

	assert.Equal(t, raw, wav[44:])
}

func TestEncodeWAVNilBuffer(t *testing.T) {
	wav := EncodeWAV(nil)
	assert.Len(t, wav, 44)
}
