package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kapu/socialintel-go/internal/audio"
	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/service/ai"
)

type thumbnailRequest struct {
	Title string `json:"title"`
	Style string `json:"style"`
}

type thumbnailResponse struct {
	URL      string `json:"url"`
	MIMEType string `json:"mimeType,omitempty"`
}

func (s *Server) generateThumbnail(c *gin.Context) {
	var req thumbnailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", "body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(c, "title is required", "title")
		return
	}

	ctx := c.Request.Context()
	res := s.deps.Media.GenerateThumbnail(ctx, req.Title, req.Style)
	s.track(ctx, domain.EventAIInteraction, "thumbnail", map[string]any{"ok": res.OK()})

	respondResult(c, ToolResult{
		Value:    thumbnailResponse{URL: res.Value.DataURL(), MIMEType: res.Value.MIMEType},
		Reason:   res.Reason,
		Err:      res.Err,
		Fallback: thumbnailResponse{URL: ai.FallbackThumbnailURL},
	})
}

type voiceRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// synthesizeVoice returns the spoken line as a WAV file and starts it on
// the caller's session player.
func (s *Server) synthesizeVoice(c *gin.Context) {
	var req voiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", "body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(c, "text is required", "text")
		return
	}
	if req.Voice != "" && !domain.ValidVoice(req.Voice) {
		badRequest(c, "voice must be one of "+strings.Join(domain.Voices, ", "), "voice")
		return
	}

	ctx := c.Request.Context()
	clip, err := s.deps.Voice.Speak(ctx, s.sessionID(c), req.Text, req.Voice)
	s.track(ctx, domain.EventAIInteraction, "voice", map[string]any{"ok": err == nil})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("X-Playback-ID", clip.Playback.ID)
	c.Data(http.StatusOK, "audio/wav", audio.EncodeWAV(clip.Buffer))
}

// stopVoice interrupts the caller's clip and releases its session player.
func (s *Server) stopVoice(c *gin.Context) {
	session := s.sessionID(c)
	c.JSON(http.StatusOK, gin.H{"session": session, "stopped": s.deps.Voice.Forget(session)})
}

type decodeRequest struct {
	Audio string `json:"audio"`
}

// decodeVoice turns a base64 PCM payload into a WAV file.
func (s *Server) decodeVoice(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", "body")
		return
	}

	clip, err := s.deps.Voice.PlayBase64(s.sessionID(c), req.Audio)
	if err != nil {
		badRequest(c, err.Error(), "audio")
		return
	}

	c.Header("X-Playback-ID", clip.Playback.ID)
	c.Data(http.StatusOK, "audio/wav", audio.EncodeWAV(clip.Buffer))
}

func (s *Server) generateBRoll(c *gin.Context) {
	var req domain.BRollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", "body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		badRequest(c, "prompt is required", "prompt")
		return
	}

	ctx := c.Request.Context()
	res := s.deps.Media.GenerateBRoll(ctx, req, nil)
	s.track(ctx, domain.EventAIInteraction, "broll", map[string]any{"ok": res.OK(), "polls": res.Value.Polls})
	respondResult(c, fromResult(res))
}
