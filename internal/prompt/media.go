package prompt

import (
	"fmt"
	"strings"
)

func BuildThumbnail(data ThumbnailData) string {
	return fmt.Sprintf(`A high-conversion YouTube thumbnail for a video titled: "%s". Style: %s. High contrast, bold text areas, vibrant colors, professional lighting, cinematic.`, data.Title, data.Style)
}

// BuildVoiceLine prefixes the script with a delivery instruction for the
// speech model.
func BuildVoiceLine(data VoiceLineData) string {
	return fmt.Sprintf("Read this hook with a %s style: %s", strings.ToLower(data.Voice), data.Text)
}

func BuildBRoll(prompt string) string {
	return fmt.Sprintf("Cinematic B-roll: %s. Professional cinematography, high quality, 4k detail, cinematic lighting.", prompt)
}
