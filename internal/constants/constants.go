package constants

import "time"

var PlatformConfig = struct {
	DefaultMaxResults int64
	MaxResultsCap     int64
	DailyQuotaLimit   int
	ListCallCost      int
}{
	DefaultMaxResults: 10,
	MaxResultsCap:     50, // playlistItems.list page limit
	DailyQuotaLimit:   10000,
	ListCallCost:      1,
}

var AnalyticsConfig = struct {
	BatchSize int
	// MaxQueuedBatches caps the backlog kept while the sink is failing.
	MaxQueuedBatches int
	RetryBackoff     time.Duration
}{
	BatchSize:        10,
	MaxQueuedBatches: 10,
	RetryBackoff:     30 * time.Second,
}

var AudioConfig = struct {
	SampleRate int
	Channels   int
	BitDepth   int
}{
	SampleRate: 24000,
	Channels:   1,
	BitDepth:   16,
}

var VideoGenerationConfig = struct {
	PollInterval    time.Duration
	NumberOfVideos  int32
	DefaultRes      string
	DefaultAspect   string
	ThumbnailAspect string
}{
	PollInterval:    10 * time.Second,
	NumberOfVideos:  1,
	DefaultRes:      "1080p",
	DefaultAspect:   "16:9",
	ThumbnailAspect: "16:9",
}

var AIInputLimits = struct {
	MaxPromptInputLength int
	MaxChatHistory       int
}{
	MaxPromptInputLength: 2000,
	MaxChatHistory:       20,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    1 * time.Hour,
	HealthCheckInterval: 10 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}

var ScraperConfig = struct {
	Timeout      time.Duration
	Concurrency  int
	UserAgent    string
	MaxURLs      int
	MaxBodyBytes int64
}{
	Timeout:      10 * time.Second,
	Concurrency:  3,
	UserAgent:    "Mozilla/5.0 (compatible; SocialIntelBot/1.0)",
	MaxURLs:      5,
	MaxBodyBytes: 2 << 20,
}

var ServerConfig = struct {
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}{
	ReadTimeout:     15 * time.Second,
	ShutdownTimeout: 10 * time.Second,
}
