package youtube

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/kapu/socialintel-go/internal/constants"
	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/util"
	"github.com/kapu/socialintel-go/pkg/errors"
)

const (
	// CTR and retention need the Analytics API; the Data API has neither.
	placeholderCTR       = "7.2%"
	placeholderRetention = "58%"
	placeholderWatchTime = "Calculated"
)

// Options configures the platform client. Zero values mean production
// defaults.
type Options struct {
	// Endpoint overrides the API base URL (tests, proxies).
	Endpoint string
	// Transport is the base round tripper under the bearer transport.
	Transport http.RoundTripper
	// DailyQuota is the unit budget per Pacific day.
	DailyQuota int
}

// Service reads the authenticated user's channel and uploads. Without a
// token it serves the demo dataset.
type Service struct {
	opts   Options
	quota  *quotaTracker
	logger *zap.Logger

	mu    sync.RWMutex
	token string
	yt    *youtube.Service
}

func NewService(opts Options, logger *zap.Logger) *Service {
	logger = util.OrNop(logger)
	if opts.DailyQuota <= 0 {
		opts.DailyQuota = constants.PlatformConfig.DailyQuotaLimit
	}
	if opts.Transport == nil {
		opts.Transport = http.DefaultTransport
	}

	s := &Service{
		opts:   opts,
		quota:  newQuotaTracker(opts.DailyQuota, logger),
		logger: logger,
	}

	logger.Info("YouTube service initialized",
		zap.Int("daily_quota", opts.DailyQuota),
		zap.Time("quota_reset", s.quota.reset))

	return s
}

// SetToken installs a bearer token. Subsequent fetches go to the live API.
func (s *Service) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.NewValidationError("access token is required", "token", "")
	}

	client := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   s.opts.Transport,
		},
	}

	clientOpts := []option.ClientOption{option.WithHTTPClient(client)}
	if s.opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(s.opts.Endpoint))
	}

	yt, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.yt = yt
	s.mu.Unlock()

	s.logger.Info("YouTube access token set")
	return nil
}

// ClearToken returns the service to demo mode.
func (s *Service) ClearToken() {
	s.mu.Lock()
	s.token = ""
	s.yt = nil
	s.mu.Unlock()

	s.logger.Info("YouTube access token cleared")
}

func (s *Service) HasToken() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Service) client() *youtube.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.yt
}

// QuotaStatus reports used units, remaining units and the next reset.
func (s *Service) QuotaStatus() (used int, remaining int, resetTime time.Time) {
	return s.quota.status()
}

// FetchMyChannel returns the authenticated channel, or the demo profile
// when no token is set. A platform-reported error becomes an AuthError
// carrying the platform's message.
func (s *Service) FetchMyChannel(ctx context.Context) (*domain.ChannelProfile, error) {
	yt := s.client()
	if yt == nil {
		return DemoChannel(), nil
	}

	cost := constants.PlatformConfig.ListCallCost
	if err := s.quota.check(cost); err != nil {
		return nil, err
	}

	resp, err := yt.Channels.List([]string{"snippet", "statistics"}).
		Mine(true).
		Context(ctx).
		Do()
	s.quota.consume(cost)
	if err != nil {
		return nil, s.translateError("channels.list", err)
	}

	if len(resp.Items) == 0 {
		return nil, errors.NewAPIError("no channel found for the authenticated account", http.StatusNotFound, nil)
	}

	return toChannelProfile(resp.Items[0]), nil
}

// FetchMyVideos returns up to maxResults of the channel's uploads. Any
// failure degrades to the demo list.
func (s *Service) FetchMyVideos(ctx context.Context, maxResults int64) []domain.VideoRecord {
	yt := s.client()
	if yt == nil {
		return DemoVideos()
	}

	videos, err := s.fetchUploads(ctx, yt, clampMaxResults(maxResults))
	if err != nil {
		s.logger.Warn("API Error, falling back to mock data", zap.Error(err))
		return DemoVideos()
	}
	return videos
}

func clampMaxResults(n int64) int64 {
	if n <= 0 {
		return constants.PlatformConfig.DefaultMaxResults
	}
	if n > constants.PlatformConfig.MaxResultsCap {
		return constants.PlatformConfig.MaxResultsCap
	}
	return n
}

func (s *Service) fetchUploads(ctx context.Context, yt *youtube.Service, maxResults int64) ([]domain.VideoRecord, error) {
	cost := constants.PlatformConfig.ListCallCost

	if err := s.quota.check(cost * 3); err != nil {
		return nil, err
	}

	channels, err := yt.Channels.List([]string{"contentDetails"}).
		Mine(true).
		Context(ctx).
		Do()
	s.quota.consume(cost)
	if err != nil {
		return nil, fmt.Errorf("channels.list: %w", err)
	}
	if len(channels.Items) == 0 || channels.Items[0].ContentDetails == nil ||
		channels.Items[0].ContentDetails.RelatedPlaylists == nil ||
		channels.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		return nil, fmt.Errorf("uploads playlist not found")
	}
	uploads := channels.Items[0].ContentDetails.RelatedPlaylists.Uploads

	playlist, err := yt.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(uploads).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	s.quota.consume(cost)
	if err != nil {
		return nil, fmt.Errorf("playlistItems.list: %w", err)
	}

	ids := make([]string, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
			ids = append(ids, item.ContentDetails.VideoId)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("uploads playlist %s is empty", uploads)
	}

	stats, err := yt.Videos.List([]string{"statistics", "contentDetails", "snippet"}).
		Id(ids...).
		Context(ctx).
		Do()
	s.quota.consume(cost)
	if err != nil {
		return nil, fmt.Errorf("videos.list: %w", err)
	}

	videos := make([]domain.VideoRecord, 0, len(stats.Items))
	for _, item := range stats.Items {
		videos = append(videos, toVideoRecord(item))
	}

	s.logger.Debug("Uploads fetched",
		zap.String("playlist", uploads),
		zap.Int("videos", len(videos)))

	return videos, nil
}

func (s *Service) translateError(call string, err error) error {
	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		s.logger.Warn("YouTube API rejected request",
			zap.String("call", call),
			zap.Int("code", apiErr.Code),
			zap.String("message", apiErr.Message))
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Code)
		}
		return errors.NewAuthError(msg, apiErr.Code)
	}
	return errors.NewAPIError(fmt.Sprintf("%s failed", call), http.StatusBadGateway, nil).WithCause(err)
}

func toChannelProfile(ch *youtube.Channel) *domain.ChannelProfile {
	profile := &domain.ChannelProfile{ID: ch.Id}
	if ch.Snippet != nil {
		profile.Title = ch.Snippet.Title
		profile.CustomURL = ch.Snippet.CustomUrl
		profile.Thumbnails = toThumbnailSet(ch.Snippet.Thumbnails)
	}
	if ch.Statistics != nil {
		profile.Statistics = domain.ChannelStatistics{
			ViewCount:       ch.Statistics.ViewCount,
			SubscriberCount: ch.Statistics.SubscriberCount,
			VideoCount:      ch.Statistics.VideoCount,
		}
	}
	return profile
}

func toThumbnailSet(t *youtube.ThumbnailDetails) domain.ThumbnailSet {
	var set domain.ThumbnailSet
	if t == nil {
		return set
	}
	conv := func(th *youtube.Thumbnail) *domain.Thumbnail {
		if th == nil || th.Url == "" {
			return nil
		}
		return &domain.Thumbnail{URL: th.Url, Width: th.Width, Height: th.Height}
	}
	set.Default = conv(t.Default)
	set.Medium = conv(t.Medium)
	set.High = conv(t.High)
	return set
}

func toVideoRecord(item *youtube.Video) domain.VideoRecord {
	rec := domain.VideoRecord{
		ID:                  item.Id,
		CTR:                 placeholderCTR,
		Retention:           placeholderRetention,
		Platform:            domain.PlatformYouTube,
		Status:              domain.VideoStatusLive,
		WatchTime:           placeholderWatchTime,
		EngagementEstimated: true,
	}
	if item.Snippet != nil {
		rec.Title = item.Snippet.Title
		if t := item.Snippet.Thumbnails; t != nil {
			switch {
			case t.High != nil && t.High.Url != "":
				rec.Thumb = t.High.Url
			case t.Default != nil:
				rec.Thumb = t.Default.Url
			}
		}
	}
	if st := item.Statistics; st != nil {
		rec.Views = util.FormatCount(st.ViewCount)
		rec.Likes = util.FormatCount(st.LikeCount)
		rec.Comments = util.FormatCount(st.CommentCount)
	} else {
		rec.Views, rec.Likes, rec.Comments = "0", "0", "0"
	}
	if item.ContentDetails != nil {
		rec.AvgDuration = util.FormatISODuration(item.ContentDetails.Duration)
	}
	return rec
}
