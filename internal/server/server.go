// Package server exposes the channel, AI and media services over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/constants"
	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/service/ai"
	"github.com/kapu/socialintel-go/internal/service/analytics"
	"github.com/kapu/socialintel-go/internal/service/voice"
	"github.com/kapu/socialintel-go/internal/service/youtube"
	"github.com/kapu/socialintel-go/internal/util"
)

// ChannelService is the platform client used by the channel routes.
type ChannelService interface {
	SetToken(ctx context.Context, token string) error
	ClearToken()
	HasToken() bool
	FetchMyChannel(ctx context.Context) (*domain.ChannelProfile, error)
	FetchMyVideos(ctx context.Context, maxResults int64) []domain.VideoRecord
	QuotaStatus() (used int, remaining int, resetTime time.Time)
}

// MediaService generates thumbnails and B-roll clips.
type MediaService interface {
	GenerateThumbnail(ctx context.Context, title, style string) ai.Result[domain.GeneratedImage]
	GenerateBRoll(ctx context.Context, req domain.BRollRequest, progress func(domain.BRollProgress)) ai.Result[domain.BRollClip]
}

// CompetitorScraper fetches public channel metadata.
type CompetitorScraper interface {
	FetchAll(ctx context.Context, pageURLs []string) ([]domain.CompetitorMeta, error)
}

// CircuitControl exposes the AI circuit breaker for health checks and
// manual reset.
type CircuitControl interface {
	GetCircuitStatus() util.CircuitBreakerStatus
	ResetCircuit()
}

// Dependencies are the services behind the routes. OAuth and Circuit may
// be nil.
type Dependencies struct {
	Channel     ChannelService
	OAuth       *youtube.OAuth
	Ideation    *ai.Ideation
	Media       MediaService
	Voice       *voice.Studio
	Competitor  CompetitorScraper
	Analytics   *analytics.Tracker
	Circuit     CircuitControl
	CORSOrigins []string
	Logger      *zap.Logger
}

// Server owns the gin engine and its http.Server.
type Server struct {
	deps       Dependencies
	tools      *ToolRegistry
	upgrader   *websocket.Upgrader
	engine     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

func New(addr string, deps Dependencies) (*Server, error) {
	if deps.Channel == nil || deps.Ideation == nil || deps.Media == nil ||
		deps.Voice == nil || deps.Competitor == nil || deps.Analytics == nil {
		return nil, fmt.Errorf("server dependencies incomplete")
	}
	deps.Logger = util.OrNop(deps.Logger)

	s := &Server{
		deps:   deps,
		logger: deps.Logger,
	}
	s.tools = s.buildTools()
	s.upgrader = newUpgrader(deps.CORSOrigins)
	s.engine = s.routes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: constants.ServerConfig.ReadTimeout,
		ReadTimeout:       constants.ServerConfig.ReadTimeout,
	}
	return s, nil
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until Shutdown. It returns nil after a graceful stop.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening",
		zap.String("addr", s.httpServer.Addr),
		zap.Strings("tools", s.tools.Names()))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and flushes queued analytics.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if flushErr := s.deps.Analytics.Flush(ctx); flushErr != nil {
		s.logger.Warn("Final analytics flush failed", zap.Error(flushErr))
	}
	return err
}
