package audio

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/kapu/socialintel-go/internal/constants"
)

// EncodeWAV renders the buffer as a 16-bit PCM RIFF/WAVE file.
func EncodeWAV(b *Buffer) []byte {
	channels := constants.AudioConfig.Channels
	rate := constants.AudioConfig.SampleRate
	var samples []float32
	if b != nil {
		if b.Channels > 0 {
			channels = b.Channels
		}
		if b.SampleRate > 0 {
			rate = b.SampleRate
		}
		samples = b.Samples
	}

	bitsPerSample := constants.AudioConfig.BitDepth
	blockAlign := channels * bitsPerSample / 8
	dataSize := len(samples) * 2

	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(rate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(rate*blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range samples {
		_ = binary.Write(buf, binary.LittleEndian, toInt16(s))
	}
	return buf.Bytes()
}

func toInt16(s float32) int16 {
	v := math.Round(float64(s) * 32768.0)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
