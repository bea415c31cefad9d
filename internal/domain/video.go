package domain

type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
)

const VideoStatusLive = "Live"

// VideoRecord is one row of the content table. Counters are preformatted
// for display ("124,500").
type VideoRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Thumb       string   `json:"thumb"`
	Views       string   `json:"views"`
	Likes       string   `json:"likes"`
	Comments    string   `json:"comments"`
	CTR         string   `json:"ctr"`
	Retention   string   `json:"retention"`
	Platform    Platform `json:"platform"`
	Status      string   `json:"status"`
	WatchTime   string   `json:"watchTime,omitempty"`
	AvgDuration string   `json:"avgDuration,omitempty"`

	// EngagementEstimated is set when CTR and Retention are placeholders
	// rather than measured values.
	EngagementEstimated bool `json:"engagementEstimated"`
}
