package domain

// Thumbnail is a single image variant returned by the platform.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width,omitempty"`
	Height int64  `json:"height,omitempty"`
}

// ThumbnailSet holds the platform's default/medium/high variants.
type ThumbnailSet struct {
	Default *Thumbnail `json:"default,omitempty"`
	Medium  *Thumbnail `json:"medium,omitempty"`
	High    *Thumbnail `json:"high,omitempty"`
}

// BestURL returns the highest resolution URL present, or "".
func (t ThumbnailSet) BestURL() string {
	for _, th := range []*Thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

// ChannelStatistics are encoded as decimal strings on the wire, matching
// the platform's own representation.
type ChannelStatistics struct {
	ViewCount       uint64 `json:"viewCount,string"`
	SubscriberCount uint64 `json:"subscriberCount,string"`
	VideoCount      uint64 `json:"videoCount,string"`
}

// ChannelProfile is the authenticated user's own channel.
type ChannelProfile struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	CustomURL  string            `json:"customUrl"`
	Thumbnails ThumbnailSet      `json:"thumbnails"`
	Statistics ChannelStatistics `json:"statistics"`
}
