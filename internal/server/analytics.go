package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kapu/socialintel-go/internal/domain"
)

type eventRequest struct {
	Event      domain.EventType `json:"event"`
	Label      string           `json:"label"`
	Properties map[string]any   `json:"properties"`
}

func (s *Server) trackEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", "body")
		return
	}
	if !req.Event.Valid() {
		badRequest(c, "unknown event type", "event")
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		badRequest(c, "label is required", "label")
		return
	}

	// A failed flush keeps the batch queued, so the event is accepted.
	_ = s.deps.Analytics.Track(c.Request.Context(), req.Event, req.Label, req.Properties)
	c.JSON(http.StatusAccepted, gin.H{
		"queued":    s.deps.Analytics.Len(),
		"sessionId": s.deps.Analytics.SessionID(),
	})
}

func (s *Server) flushAnalytics(c *gin.Context) {
	if err := s.deps.Analytics.Flush(c.Request.Context()); err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, errorResponse{
			Error: "analytics flush failed",
			Code:  "ANALYTICS_ERROR",
			Extra: map[string]any{"queued": s.deps.Analytics.Len()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"queued": s.deps.Analytics.Len()})
}
