package youtube

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/socialintel-go/pkg/errors"
)

type fakePlatform struct {
	calls         atomic.Int32
	failPlaylist  bool
	channelError  bool
	noUploads     bool
	authorization atomic.Value
}

func (f *fakePlatform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.authorization.Store(r.Header.Get("Authorization"))
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/channels"):
		if f.channelError {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"code":401,"message":"Request had invalid authentication credentials."}}`)
			return
		}
		if strings.Contains(r.URL.Query().Get("part"), "contentDetails") {
			if f.noUploads {
				fmt.Fprint(w, `{"items":[]}`)
				return
			}
			fmt.Fprint(w, `{"items":[{"id":"UC1","contentDetails":{"relatedPlaylists":{"uploads":"UU1"}}}]}`)
			return
		}
		fmt.Fprint(w, `{"items":[{"id":"UC1","snippet":{"title":"Real Channel","customUrl":"@real","thumbnails":{"high":{"url":"https://img/high.jpg"}}},"statistics":{"viewCount":"987654","subscriberCount":"4321","videoCount":"12"}}]}`)
	case strings.HasSuffix(r.URL.Path, "/playlistItems"):
		if f.failPlaylist {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":{"code":500,"message":"backend error"}}`)
			return
		}
		fmt.Fprint(w, `{"items":[{"contentDetails":{"videoId":"v1"}},{"contentDetails":{"videoId":"v2"}}]}`)
	case strings.HasSuffix(r.URL.Path, "/videos"):
		fmt.Fprint(w, `{"items":[
			{"id":"v1","snippet":{"title":"First","thumbnails":{"high":{"url":"https://img/v1.jpg"}}},"statistics":{"viewCount":"124500","likeCount":"8200","commentCount":"450"},"contentDetails":{"duration":"PT12M45S"}},
			{"id":"v2","snippet":{"title":"Second","thumbnails":{"default":{"url":"https://img/v2.jpg"}}},"statistics":{"viewCount":"7","likeCount":"0","commentCount":"1"},"contentDetails":{"duration":"PT1H2M3S"}}
		]}`)
	default:
		http.NotFound(w, r)
	}
}

func newTestService(t *testing.T, platform *fakePlatform) *Service {
	t.Helper()
	srv := httptest.NewServer(platform)
	t.Cleanup(srv.Close)

	return NewService(Options{Endpoint: srv.URL + "/"}, nil)
}

func TestFetchMyChannelDemoWithoutToken(t *testing.T) {
	platform := &fakePlatform{}
	svc := newTestService(t, platform)

	first, err := svc.FetchMyChannel(context.Background())
	require.NoError(t, err)
	second, err := svc.FetchMyChannel(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "UC_DEMO_CHANNEL_ID", first.ID)
	assert.Equal(t, "SocialIntel Demo", first.Title)
	assert.Equal(t, "@socialintel_pro", first.CustomURL)
	assert.Equal(t, "https://picsum.photos/seed/demo/200/200", first.Thumbnails.High.URL)
	assert.Equal(t, uint64(1500000), first.Statistics.ViewCount)
	assert.Equal(t, uint64(124500), first.Statistics.SubscriberCount)
	assert.Equal(t, uint64(142), first.Statistics.VideoCount)
	assert.Equal(t, int32(0), platform.calls.Load())
}

func TestFetchMyVideosDemoWithoutToken(t *testing.T) {
	platform := &fakePlatform{}
	svc := newTestService(t, platform)

	videos := svc.FetchMyVideos(context.Background(), 10)

	require.Len(t, videos, 3)
	assert.Equal(t, "mock1", videos[0].ID)
	assert.Equal(t, "124,500", videos[0].Views)
	assert.Equal(t, "8,200", videos[0].Likes)
	assert.Equal(t, "450", videos[0].Comments)
	assert.Equal(t, "8.4%", videos[0].CTR)
	assert.Equal(t, "62%", videos[0].Retention)
	assert.Equal(t, "12:45", videos[0].AvgDuration)
	assert.Equal(t, "89,200", videos[1].Views)
	assert.Equal(t, "45,600", videos[2].Views)
	assert.Equal(t, int32(0), platform.calls.Load())
}

func TestFetchMyChannelWithToken(t *testing.T) {
	platform := &fakePlatform{}
	svc := newTestService(t, platform)
	require.NoError(t, svc.SetToken(context.Background(), "tok"))
	assert.True(t, svc.HasToken())

	profile, err := svc.FetchMyChannel(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "UC1", profile.ID)
	assert.Equal(t, "Real Channel", profile.Title)
	assert.Equal(t, "@real", profile.CustomURL)
	assert.Equal(t, "https://img/high.jpg", profile.Thumbnails.BestURL())
	assert.Equal(t, uint64(987654), profile.Statistics.ViewCount)
	assert.Equal(t, "Bearer tok", platform.authorization.Load())
}

func TestFetchMyChannelPlatformErrorIsAuthError(t *testing.T) {
	platform := &fakePlatform{channelError: true}
	svc := newTestService(t, platform)
	require.NoError(t, svc.SetToken(context.Background(), "expired"))

	_, err := svc.FetchMyChannel(context.Background())
	require.Error(t, err)

	var authErr *errors.AuthError
	require.True(t, stderrors.As(err, &authErr))
	assert.Equal(t, "Request had invalid authentication credentials.", authErr.Message)
	assert.Equal(t, 401, authErr.PlatformCode)
}

func TestFetchMyVideosWithToken(t *testing.T) {
	platform := &fakePlatform{}
	svc := newTestService(t, platform)
	require.NoError(t, svc.SetToken(context.Background(), "tok"))

	videos := svc.FetchMyVideos(context.Background(), 0)

	require.Len(t, videos, 2)
	assert.Equal(t, "v1", videos[0].ID)
	assert.Equal(t, "First", videos[0].Title)
	assert.Equal(t, "https://img/v1.jpg", videos[0].Thumb)
	assert.Equal(t, "124,500", videos[0].Views)
	assert.Equal(t, "8,200", videos[0].Likes)
	assert.Equal(t, "7.2%", videos[0].CTR)
	assert.Equal(t, "58%", videos[0].Retention)
	assert.Equal(t, "12:45", videos[0].AvgDuration)
	assert.True(t, videos[0].EngagementEstimated)

	assert.Equal(t, "https://img/v2.jpg", videos[1].Thumb)
	assert.Equal(t, "1:02:03", videos[1].AvgDuration)
	assert.Equal(t, int32(3), platform.calls.Load())

	used, _, _ := svc.QuotaStatus()
	assert.Equal(t, 3, used)
}

func TestFetchMyVideosFallsBackOnPlaylistFailure(t *testing.T) {
	platform := &fakePlatform{failPlaylist: true}
	svc := newTestService(t, platform)
	require.NoError(t, svc.SetToken(context.Background(), "tok"))

	videos := svc.FetchMyVideos(context.Background(), 5)

	assert.Equal(t, DemoVideos(), videos)
}

func TestFetchMyVideosFallsBackWithoutUploads(t *testing.T) {
	platform := &fakePlatform{noUploads: true}
	svc := newTestService(t, platform)
	require.NoError(t, svc.SetToken(context.Background(), "tok"))

	videos := svc.FetchMyVideos(context.Background(), 5)

	assert.Equal(t, DemoVideos(), videos)
	assert.Equal(t, int32(1), platform.calls.Load())
}

func TestClearTokenRestoresDemoMode(t *testing.T) {
	platform := &fakePlatform{}
	svc := newTestService(t, platform)
	require.NoError(t, svc.SetToken(context.Background(), "tok"))

	svc.ClearToken()

	assert.False(t, svc.HasToken())
	profile, err := svc.FetchMyChannel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UC_DEMO_CHANNEL_ID", profile.ID)
}

func TestSetTokenRejectsEmpty(t *testing.T) {
	svc := NewService(Options{}, nil)
	assert.Error(t, svc.SetToken(context.Background(), ""))
}

func TestQuotaExhaustionDegrades(t *testing.T) {
	platform := &fakePlatform{}
	srv := httptest.NewServer(platform)
	t.Cleanup(srv.Close)

	svc := NewService(Options{Endpoint: srv.URL + "/", DailyQuota: 2}, nil)
	require.NoError(t, svc.SetToken(context.Background(), "tok"))

	videos := svc.FetchMyVideos(context.Background(), 5)
	assert.Equal(t, DemoVideos(), videos)
	assert.Equal(t, int32(0), platform.calls.Load())

	_, err := svc.FetchMyChannel(context.Background())
	require.NoError(t, err)
	_, err = svc.FetchMyChannel(context.Background())
	require.NoError(t, err)

	_, err = svc.FetchMyChannel(context.Background())
	var quotaErr *errors.QuotaError
	require.True(t, stderrors.As(err, &quotaErr))
	assert.Equal(t, 2, quotaErr.Limit)
}

func TestClampMaxResults(t *testing.T) {
	assert.Equal(t, int64(10), clampMaxResults(0))
	assert.Equal(t, int64(10), clampMaxResults(-4))
	assert.Equal(t, int64(25), clampMaxResults(25))
	assert.Equal(t, int64(50), clampMaxResults(500))
}
