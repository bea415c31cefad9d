package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	YouTube   YouTubeConfig
	Media     MediaConfig
	Analytics AnalyticsConfig
	Redis     RedisConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	ProModel    string
	ImageModel  string
	SpeechModel string
	VideoModel  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type YouTubeConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Endpoint     string
}

type MediaConfig struct {
	PollInterval time.Duration
	MaxPolls     int
}

type AnalyticsConfig struct {
	BatchSize    int
	Sink         string
	RedisChannel string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LoggingConfig struct {
	Level string
	File  string
}

const (
	SinkNop   = "nop"
	SinkLog   = "log"
	SinkRedis = "redis"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:        getEnv("SERVER_ADDR", ":8080"),
			CORSOrigins: parseCommaSeparated(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:       getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
			ProModel:    getEnv("GEMINI_PRO_MODEL", "gemini-3-pro-preview"),
			ImageModel:  getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
			SpeechModel: getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
			VideoModel:  getEnv("VEO_MODEL", "veo-3.1-fast-generate-preview"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-5-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		YouTube: YouTubeConfig{
			ClientID:     getEnv("YOUTUBE_CLIENT_ID", ""),
			ClientSecret: getEnv("YOUTUBE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("YOUTUBE_REDIRECT_URL", "http://localhost:8080/auth/youtube/callback"),
			Endpoint:     getEnv("YOUTUBE_API_ENDPOINT", ""),
		},
		Media: MediaConfig{
			PollInterval: time.Duration(getEnvInt("VIDEO_POLL_INTERVAL_SECONDS", 10)) * time.Second,
			MaxPolls:     getEnvInt("VIDEO_MAX_POLLS", 0),
		},
		Analytics: AnalyticsConfig{
			BatchSize:    getEnvInt("ANALYTICS_BATCH_SIZE", 10),
			Sink:         strings.ToLower(getEnv("ANALYTICS_SINK", SinkNop)),
			RedisChannel: getEnv("ANALYTICS_REDIS_CHANNEL", "socialintel:analytics"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY (or API_KEY) is required")
	}
	if c.Media.PollInterval <= 0 {
		return fmt.Errorf("VIDEO_POLL_INTERVAL_SECONDS must be positive")
	}
	if c.Media.MaxPolls < 0 {
		return fmt.Errorf("VIDEO_MAX_POLLS must not be negative")
	}
	if c.Analytics.BatchSize <= 0 {
		return fmt.Errorf("ANALYTICS_BATCH_SIZE must be positive")
	}
	switch c.Analytics.Sink {
	case SinkNop, SinkLog, SinkRedis:
	default:
		return fmt.Errorf("unknown ANALYTICS_SINK %q", c.Analytics.Sink)
	}
	return nil
}

// OAuthEnabled reports whether the server-side authorization code flow is configured.
func (c *Config) OAuthEnabled() bool {
	return c.YouTube.ClientID != "" && c.YouTube.ClientSecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
