package domain

import "fmt"

// GeneratedImage is an inline image returned by the image model.
type GeneratedImage struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

// DataURL renders the image as a data: URL.
func (g GeneratedImage) DataURL() string {
	if g.Data == "" {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", g.MIMEType, g.Data)
}

type VideoResolution string

const (
	Resolution720p  VideoResolution = "720p"
	Resolution1080p VideoResolution = "1080p"
)

type AspectRatio string

const (
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

// BRollRequest describes one video generation job.
type BRollRequest struct {
	Prompt      string          `json:"prompt"`
	Resolution  VideoResolution `json:"resolution"`
	AspectRatio AspectRatio     `json:"aspectRatio"`
}

// BRollClip is the finished generation. DownloadURL already carries the key.
type BRollClip struct {
	Operation   string `json:"operation"`
	DownloadURL string `json:"downloadUrl"`
	Polls       int    `json:"polls"`
}

// BRollProgress is emitted once per poll while a clip renders.
type BRollProgress struct {
	Poll    int    `json:"poll"`
	Message string `json:"message"`
	Done    bool   `json:"done"`
}

// Voices offered by the speech model.
var Voices = []string{"Zephyr", "Kore", "Puck", "Charon"}

// ValidVoice reports whether name is one of Voices.
func ValidVoice(name string) bool {
	for _, v := range Voices {
		if v == name {
			return true
		}
	}
	return false
}
