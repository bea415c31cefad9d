package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/util"
)

const oauthStateCookie = "oauth_state"

type tokenRequest struct {
	AccessToken string `json:"accessToken"`
}

func (s *Server) setToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", "body")
		return
	}
	ctx := c.Request.Context()
	if err := s.deps.Channel.SetToken(ctx, req.AccessToken); err != nil {
		writeError(c, err)
		return
	}
	s.track(ctx, domain.EventAuth, "token_set", nil)
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

func (s *Server) clearToken(c *gin.Context) {
	s.deps.Channel.ClearToken()
	s.track(c.Request.Context(), domain.EventAuth, "token_cleared", nil)
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// startOAuth redirects to the consent screen with a state cookie.
func (s *Server) startOAuth(c *gin.Context) {
	if s.deps.OAuth == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "YouTube OAuth is not configured", Code: "NOT_CONFIGURED"})
		return
	}
	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, s.deps.OAuth.AuthCodeURL(state))
}

func (s *Server) oauthCallback(c *gin.Context) {
	if s.deps.OAuth == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "YouTube OAuth is not configured", Code: "NOT_CONFIGURED"})
		return
	}
	if errParam := c.Query("error"); errParam != "" {
		badRequest(c, "OAuth error: "+errParam, "error")
		return
	}

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		badRequest(c, "OAuth state mismatch", "state")
		return
	}
	code := c.Query("code")
	if code == "" {
		badRequest(c, "authorization code not found", "code")
		return
	}

	ctx := c.Request.Context()
	token, err := s.deps.OAuth.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("OAuth exchange failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, errorResponse{Error: "failed to exchange code for token", Code: "OAUTH_ERROR"})
		return
	}
	if err := s.deps.Channel.SetToken(ctx, token.AccessToken); err != nil {
		writeError(c, err)
		return
	}

	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)
	s.track(ctx, domain.EventAuth, "oauth_complete", nil)
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "expiry": token.Expiry})
}

func (s *Server) getChannel(c *gin.Context) {
	profile, err := s.deps.Channel.FetchMyChannel(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": profile,
		"demo": !s.deps.Channel.HasToken(),
		"summary": gin.H{
			"subscribers": util.FormatCount(profile.Statistics.SubscriberCount),
			"views":       util.FormatCount(profile.Statistics.ViewCount),
			"videos":      util.FormatCount(profile.Statistics.VideoCount),
		},
	})
}

func (s *Server) getVideos(c *gin.Context) {
	var maxResults int64
	if raw := c.Query("maxResults"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			badRequest(c, "maxResults must be a non-negative integer", "maxResults")
			return
		}
		maxResults = n
	}

	videos := s.deps.Channel.FetchMyVideos(c.Request.Context(), maxResults)
	c.JSON(http.StatusOK, gin.H{
		"data": videos,
		"demo": !s.deps.Channel.HasToken(),
	})
}

func (s *Server) health(c *gin.Context) {
	used, remaining, reset := s.deps.Channel.QuotaStatus()
	body := gin.H{
		"status":        "ok",
		"authenticated": s.deps.Channel.HasToken(),
		"quota": gin.H{
			"used":      used,
			"remaining": remaining,
			"reset":     reset.Format(time.RFC3339),
		},
		"analytics_queued":  s.deps.Analytics.Len(),
		"analytics_dropped": s.deps.Analytics.Dropped(),
		"voice_sessions":    s.deps.Voice.Sessions(),
		"tools":             s.tools.Count(),
	}
	if s.deps.Circuit != nil {
		body["circuit"] = s.deps.Circuit.GetCircuitStatus()
	}
	c.JSON(http.StatusOK, body)
}
