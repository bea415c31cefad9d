package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/service/ai"
)

const (
	wsWriteWait     = 10 * time.Second
	wsRequestWait   = 30 * time.Second
	wsMessageLimit  = 8 << 10
	msgTypeProgress = "progress"
	msgTypeDone     = "done"
	msgTypeError    = "error"
)

// newUpgrader accepts the same origins as the CORS layer.
func newUpgrader(origins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
		},
	}
}

// brollMessage is one server-to-client frame on /ws/broll.
type brollMessage struct {
	Type     string                `json:"type"`
	Progress *domain.BRollProgress `json:"progress,omitempty"`
	Clip     *domain.BRollClip     `json:"clip,omitempty"`
	Reason   ai.FailureReason      `json:"reason,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// brollStream reads one BRollRequest, then streams progress frames until
// the clip is ready. Closing the socket cancels the generation.
func (s *Server) brollStream(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsMessageLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsRequestWait))

	var req domain.BRollRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.logger.Debug("B-roll request not received", zap.Error(err))
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The client sends nothing after the request; any read result means
	// it went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(msg brollMessage) {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			s.logger.Debug("B-roll progress write failed", zap.Error(err))
			cancel()
		}
	}

	res := s.deps.Media.GenerateBRoll(ctx, req, func(p domain.BRollProgress) {
		send(brollMessage{Type: msgTypeProgress, Progress: &p})
	})
	s.track(context.Background(), domain.EventAIInteraction, "broll_stream", map[string]any{"ok": res.OK()})

	if res.OK() {
		send(brollMessage{Type: msgTypeDone, Clip: &res.Value})
	} else if ctx.Err() == nil {
		send(brollMessage{Type: msgTypeError, Reason: res.Reason, Error: res.Err.Error()})
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(wsWriteWait))
}
