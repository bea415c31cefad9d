package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionHeader = "X-Session-ID"

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))
	router.Use(cors.New(corsConfig(s.deps.CORSOrigins)))

	router.GET("/healthz", s.health)

	router.GET("/auth/youtube", s.startOAuth)
	router.GET("/auth/youtube/callback", s.oauthCallback)

	api := router.Group("/api")
	{
		api.POST("/auth/token", s.setToken)
		api.DELETE("/auth/token", s.clearToken)

		api.GET("/channel", s.getChannel)
		api.GET("/videos", s.getVideos)

		api.POST("/ai/oracle", s.oracleChat)
		api.POST("/ai/:tool", s.runTool)
		api.DELETE("/ai/circuit", s.resetCircuit)

		media := api.Group("/media")
		media.POST("/thumbnail", s.generateThumbnail)
		media.POST("/voice", s.synthesizeVoice)
		media.DELETE("/voice", s.stopVoice)
		media.POST("/voice/decode", s.decodeVoice)
		media.POST("/broll", s.generateBRoll)

		api.POST("/analytics/events", s.trackEvent)
		api.POST("/analytics/flush", s.flushAnalytics)
	}

	router.GET("/ws/broll", s.brollStream)

	return router
}

// corsConfig allows every origin when none or "*" is configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", sessionHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// sessionID prefers the caller's header and falls back to the tracker's
// own session.
func (s *Server) sessionID(c *gin.Context) string {
	if id := c.GetHeader(sessionHeader); id != "" {
		return id
	}
	return s.deps.Analytics.SessionID()
}
