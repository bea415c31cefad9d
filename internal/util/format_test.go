package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "450", FormatCount(450))
	assert.Equal(t, "124,500", FormatCount(124500))
	assert.Equal(t, "1,500,000", FormatCount(1500000))
}

func TestFormatISODuration(t *testing.T) {
	cases := map[string]string{
		"PT12M45S": "12:45",
		"PT8M12S":  "08:12",
		"PT45S":    "00:45",
		"PT1H2M3S": "1:02:03",
		"P1DT1M":   "24:01:00",
		"PT":       "PT",
		"garbage":  "garbage",
		"":         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatISODuration(in), "input %q", in)
	}
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "tech and ai", SanitizeInput("  tech \n and\tai ", 0))
	assert.Equal(t, "abc", SanitizeInput("abcdef", 3))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "héllo", TruncateString("héllo", 5))
	assert.Equal(t, "hé...", TruncateString("héllo", 2))
}
