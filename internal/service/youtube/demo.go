package youtube

import "github.com/kapu/socialintel-go/internal/domain"

// DemoChannel is served while no access token is set.
func DemoChannel() *domain.ChannelProfile {
	return &domain.ChannelProfile{
		ID:        "UC_DEMO_CHANNEL_ID",
		Title:     "SocialIntel Demo",
		CustomURL: "@socialintel_pro",
		Thumbnails: domain.ThumbnailSet{
			High: &domain.Thumbnail{URL: "https://picsum.photos/seed/demo/200/200"},
		},
		Statistics: domain.ChannelStatistics{
			ViewCount:       1500000,
			SubscriberCount: 124500,
			VideoCount:      142,
		},
	}
}

// DemoVideos is the fixed content table used without a token and whenever
// the live fetch fails. Each call returns a fresh slice.
func DemoVideos() []domain.VideoRecord {
	return []domain.VideoRecord{
		{
			ID:                  "mock1",
			Title:               "How I Built a $10k/mo SaaS in 30 Days (Full Breakdown)",
			Thumb:               "https://images.unsplash.com/photo-1460925895917-afdab827c52f?auto=format&fit=crop&q=80&w=800",
			Views:               "124,500",
			Likes:               "8,200",
			Comments:            "450",
			CTR:                 "8.4%",
			Retention:           "62%",
			Platform:            domain.PlatformYouTube,
			Status:              domain.VideoStatusLive,
			WatchTime:           "4,200 hrs",
			AvgDuration:         "12:45",
			EngagementEstimated: true,
		},
		{
			ID:                  "mock2",
			Title:               "10 AI Tools That Will Make You A 10x Developer",
			Thumb:               "https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&q=80&w=800",
			Views:               "89,200",
			Likes:               "5,100",
			Comments:            "230",
			CTR:                 "7.1%",
			Retention:           "54%",
			Platform:            domain.PlatformYouTube,
			Status:              domain.VideoStatusLive,
			WatchTime:           "3,100 hrs",
			AvgDuration:         "08:12",
			EngagementEstimated: true,
		},
		{
			ID:                  "mock3",
			Title:               "The Future of Web Design: Glassmorphism vs Neobrutalism",
			Thumb:               "https://images.unsplash.com/photo-1558655146-d09347e92766?auto=format&fit=crop&q=80&w=800",
			Views:               "45,600",
			Likes:               "2,800",
			Comments:            "180",
			CTR:                 "6.2%",
			Retention:           "48%",
			Platform:            domain.PlatformYouTube,
			Status:              domain.VideoStatusLive,
			WatchTime:           "1,500 hrs",
			AvgDuration:         "15:30",
			EngagementEstimated: true,
		},
	}
}
