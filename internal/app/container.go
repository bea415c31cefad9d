package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/config"
	"github.com/kapu/socialintel-go/internal/server"
	"github.com/kapu/socialintel-go/internal/service/ai"
	"github.com/kapu/socialintel-go/internal/service/analytics"
	"github.com/kapu/socialintel-go/internal/service/competitor"
	"github.com/kapu/socialintel-go/internal/service/voice"
	"github.com/kapu/socialintel-go/internal/service/youtube"
)

// Container bundles assembled services for constructing the HTTP server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	serverDeps server.Dependencies
	closers    []func()
}

// NewServer instantiates the HTTP server using the pre-built dependency graph.
func (c *Container) NewServer() (*server.Server, error) {
	if c == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return server.New(c.Config.Server.Addr, c.serverDeps)
}

// Close releases external connections in reverse creation order.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles all services. Heavy initialization (AI clients, Redis)
// happens here so the server only wires routes.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Platform client
	channelSvc := youtube.NewService(youtube.Options{Endpoint: cfg.YouTube.Endpoint}, logger)

	var oauth *youtube.OAuth
	if cfg.OAuthEnabled() {
		oauth = youtube.NewOAuth(cfg.YouTube.ClientID, cfg.YouTube.ClientSecret, cfg.YouTube.RedirectURL, logger)
		logger.Info("YouTube OAuth enabled", zap.String("redirect", cfg.YouTube.RedirectURL))
	}

	// AI stack
	modelManager, geminiClient, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		GeminiAPIKey:       cfg.Gemini.APIKey,
		OpenAIAPIKey:       cfg.OpenAI.APIKey,
		DefaultGeminiModel: cfg.Gemini.Model,
		DefaultOpenAIModel: cfg.OpenAI.Model,
		EnableFallback:     cfg.OpenAI.EnableFallback,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}

	ideation := ai.NewIdeation(modelManager, ai.Models{
		Flash: cfg.Gemini.Model,
		Pro:   cfg.Gemini.ProModel,
	}, logger)

	media := ai.NewMediaFromClient(geminiClient, ai.MediaModels{
		Image:  cfg.Gemini.ImageModel,
		Speech: cfg.Gemini.SpeechModel,
		Video:  cfg.Gemini.VideoModel,
	}, ai.MediaOptions{
		PollInterval: cfg.Media.PollInterval,
		MaxPolls:     cfg.Media.MaxPolls,
		APIKey:       cfg.Gemini.APIKey,
	}, logger)

	studio := voice.NewStudio(media, logger)
	scraper := competitor.NewScraper(nil, logger)

	// Analytics
	sink, sinkClosers, err := buildSink(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, sinkClosers...)
	tracker := analytics.NewTracker(sink, cfg.Analytics.BatchSize, logger)

	logger.Info("Services assembled",
		zap.String("gemini_model", cfg.Gemini.Model),
		zap.String("analytics_sink", sink.Name()),
		zap.Bool("oauth", oauth != nil),
		zap.Int("video_max_polls", cfg.Media.MaxPolls))

	return &Container{
		Config: cfg,
		Logger: logger,
		serverDeps: server.Dependencies{
			Channel:     channelSvc,
			OAuth:       oauth,
			Ideation:    ideation,
			Media:       media,
			Voice:       studio,
			Competitor:  scraper,
			Analytics:   tracker,
			Circuit:     modelManager,
			CORSOrigins: cfg.Server.CORSOrigins,
			Logger:      logger,
		},
		closers: closers,
	}, nil
}

func buildSink(ctx context.Context, cfg *config.Config, logger *zap.Logger) (analytics.Sink, []func(), error) {
	switch cfg.Analytics.Sink {
	case config.SinkLog:
		return analytics.NewLogSink(logger), nil, nil
	case config.SinkRedis:
		client, err := analytics.DialRedis(ctx, analytics.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create analytics sink: %w", err)
		}
		closer := func() {
			if err := client.Close(); err != nil {
				logger.Warn("Redis close failed", zap.Error(err))
			}
		}
		return analytics.NewRedisSink(client, cfg.Analytics.RedisChannel, logger), []func(){closer}, nil
	default:
		return analytics.NopSink{}, nil, nil
	}
}
