package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/constants"
	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/service/ai"
)

func (s *Server) buildTools() *ToolRegistry {
	ideas := s.deps.Ideation
	r := NewToolRegistry()

	r.Register(Tool{Name: "titles", Required: []string{"topic"}, Run: func(ctx context.Context, req ToolRequest) ToolResult {
		res := fromResult(ideas.TitleVariants(ctx, req.Topic))
		res.Fallback = ai.FallbackTitles(strings.TrimSpace(req.Topic))
		return res
	}})
	r.Register(Tool{Name: "topics", Required: []string{"niche"}, Run: func(ctx context.Context, req ToolRequest) ToolResult {
		return fromResult(ideas.ViralTopics(ctx, req.Niche))
	}})
	r.Register(Tool{Name: "hooks", Required: []string{"title"}, Run: func(ctx context.Context, req ToolRequest) ToolResult {
		return fromResult(ideas.ScriptHooks(ctx, req.Title))
	}})
	r.Register(Tool{Name: "outline", Required: []string{"title", "niche"}, Run: func(ctx context.Context, req ToolRequest) ToolResult {
		return fromResult(ideas.ScriptOutline(ctx, req.Title, req.Niche))
	}})
	r.Register(Tool{Name: "personas", Required: []string{"niche"}, Run: func(ctx context.Context, req ToolRequest) ToolResult {
		return fromResult(ideas.AudiencePersonas(ctx, req.Niche))
	}})
	r.Register(Tool{Name: "interrupts", Required: []string{"idea"}, Run: func(ctx context.Context, req ToolRequest) ToolResult {
		return fromResult(ideas.PatternInterrupts(ctx, req.Idea))
	}})
	r.Register(Tool{Name: "insights", Run: s.channelInsights})
	r.Register(Tool{Name: "seo", Required: []string{"title"}, Run: func(ctx context.Context, req ToolRequest) ToolResult {
		return fromResult(ideas.VideoSEO(ctx, req.Title))
	}})
	r.Register(Tool{Name: "trends", Run: func(ctx context.Context, _ ToolRequest) ToolResult {
		res := fromResult(ideas.TrendForecast(ctx))
		res.Fallback = ai.FallbackTrends()
		return res
	}})
	r.Register(Tool{Name: "ctr", Required: []string{"title"}, Run: func(ctx context.Context, req ToolRequest) ToolResult {
		res := fromResult(ideas.SimulateCTR(ctx, req.Title))
		res.Fallback = ai.FallbackCTR()
		return res
	}})
	r.Register(Tool{Name: "competitor", Required: []string{"urls"}, Run: s.competitorReport})

	return r
}

// channelOverview is what the insights tool analyzes when the caller sends
// no channel data of its own.
type channelOverview struct {
	Channel *domain.ChannelProfile `json:"channel"`
	Videos  []domain.VideoRecord   `json:"videos"`
}

func (s *Server) channelInsights(ctx context.Context, req ToolRequest) ToolResult {
	if len(req.Channel) > 0 && string(req.Channel) != "null" {
		return fromResult(s.deps.Ideation.ChannelInsights(ctx, req.Channel))
	}

	overview, err := s.loadOverview(ctx)
	if err != nil {
		return ToolResult{Value: []domain.ChannelInsight{}, Reason: ai.ReasonTransport, Err: err}
	}
	return fromResult(s.deps.Ideation.ChannelInsights(ctx, overview))
}

// loadOverview fetches the profile and uploads concurrently.
func (s *Server) loadOverview(ctx context.Context) (channelOverview, error) {
	var overview channelOverview

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		ch, err := s.deps.Channel.FetchMyChannel(ctx)
		if err != nil {
			return fmt.Errorf("fetch channel: %w", err)
		}
		overview.Channel = ch
		return nil
	})
	p.Go(func(ctx context.Context) error {
		overview.Videos = s.deps.Channel.FetchMyVideos(ctx, 0)
		return nil
	})

	err := p.Wait()
	return overview, err
}

func (s *Server) competitorReport(ctx context.Context, req ToolRequest) ToolResult {
	metas, err := s.deps.Competitor.FetchAll(ctx, req.URLs)
	if err != nil {
		s.logger.Warn("Competitor pages unavailable", zap.Strings("urls", req.URLs), zap.Error(err))
		return ToolResult{Value: domain.CompetitorReport{}.Normalized(), Reason: ai.ReasonTransport, Err: err}
	}
	return fromResult(s.deps.Ideation.AnalyzeCompetitor(ctx, req.Niche, metas))
}

func (s *Server) runTool(c *gin.Context) {
	name := c.Param("tool")
	tool, ok := s.tools.Lookup(name)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{
			Error: fmt.Sprintf("%v: %s", ErrUnknownTool, name),
			Code:  "NOT_FOUND",
			Extra: map[string]any{"tools": s.tools.Names()},
		})
		return
	}

	var req ToolRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, "invalid request body", "body")
		return
	}
	if field := tool.missingField(req); field != "" {
		badRequest(c, field+" is required", field)
		return
	}
	if limit := constants.ScraperConfig.MaxURLs; len(req.URLs) > limit {
		badRequest(c, fmt.Sprintf("at most %d urls per request", limit), "urls")
		return
	}
	if len(req.Channel) > 0 && !json.Valid(req.Channel) {
		badRequest(c, "channel must be JSON", "channel")
		return
	}

	ctx := c.Request.Context()
	result := tool.Run(ctx, req)
	s.track(ctx, domain.EventAIInteraction, tool.Name, map[string]any{
		"ok":     result.Err == nil,
		"reason": string(result.Reason),
	})
	respondResult(c, result)
}

type oracleRequest struct {
	Message      string            `json:"message"`
	History      []domain.ChatTurn `json:"history"`
	ChannelTitle string            `json:"channelTitle"`
}

func (s *Server) oracleChat(c *gin.Context) {
	var req oracleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", "body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(c, "message is required", "message")
		return
	}
	for _, turn := range req.History {
		if turn.Role != domain.ChatRoleUser && turn.Role != domain.ChatRoleAssistant {
			badRequest(c, "history roles must be user or assistant", "history")
			return
		}
	}

	ctx := c.Request.Context()
	res := s.deps.Ideation.OracleChat(ctx, req.ChannelTitle, req.History, req.Message)
	s.track(ctx, domain.EventAIInteraction, "oracle", map[string]any{"ok": res.OK()})
	respondResult(c, fromResult(res))
}

// resetCircuit closes the AI circuit breaker after an outage is resolved.
func (s *Server) resetCircuit(c *gin.Context) {
	if s.deps.Circuit == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "circuit breaker not configured", Code: "NOT_FOUND"})
		return
	}
	s.deps.Circuit.ResetCircuit()
	s.logger.Info("AI circuit breaker reset")
	c.JSON(http.StatusOK, gin.H{"circuit": s.deps.Circuit.GetCircuitStatus()})
}

// track records an event and only logs sink failures.
func (s *Server) track(ctx context.Context, kind domain.EventType, label string, props map[string]any) {
	if err := s.deps.Analytics.Track(ctx, kind, label, props); err != nil {
		s.logger.Debug("Analytics track failed", zap.String("label", label), zap.Error(err))
	}
}
