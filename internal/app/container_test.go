package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/config"
)

func testConfig(sink string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Addr: ":0"},
		Gemini: config.GeminiConfig{
			APIKey:      "test-key",
			Model:       "gemini-3-flash-preview",
			ProModel:    "gemini-3-pro-preview",
			ImageModel:  "gemini-2.5-flash-image",
			SpeechModel: "gemini-2.5-flash-preview-tts",
			VideoModel:  "veo-3.1-fast-generate-preview",
		},
		Media:     config.MediaConfig{PollInterval: 10 * time.Second},
		Analytics: config.AnalyticsConfig{BatchSize: 10, Sink: sink, RedisChannel: "socialintel:analytics"},
		Redis:     config.RedisConfig{Host: "127.0.0.1", Port: 1},
	}
}

func TestBuildAssemblesServer(t *testing.T) {
	container, err := Build(context.Background(), testConfig(config.SinkLog), zap.NewNop())
	require.NoError(t, err)
	defer container.Close()

	srv, err := container.NewServer()
	require.NoError(t, err)
	assert.NotNil(t, srv.Handler())
	assert.Nil(t, container.serverDeps.OAuth)
}

func TestBuildRequiresArguments(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), testConfig(config.SinkNop), nil)
	assert.Error(t, err)
}

func TestBuildFailsWhenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := Build(ctx, testConfig(config.SinkRedis), zap.NewNop())
	assert.ErrorContains(t, err, "analytics sink")
}
