package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/util"
)

// Sink receives flushed batches.
type Sink interface {
	Name() string
	Send(ctx context.Context, batch []domain.AnalyticsEvent) error
}

// NopSink drops every batch.
type NopSink struct{}

func (NopSink) Name() string { return "nop" }

func (NopSink) Send(context.Context, []domain.AnalyticsEvent) error { return nil }

// LogSink writes each batch to the logger.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: util.OrNop(logger)}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, batch []domain.AnalyticsEvent) error {
	for _, e := range batch {
		s.logger.Info("Analytics event",
			zap.String("event", string(e.Event)),
			zap.String("label", e.Label),
			zap.String("session_id", e.SessionID),
			zap.Int64("timestamp", e.Timestamp),
			zap.Any("properties", e.Properties))
	}
	return nil
}

// Publisher is the part of *redis.Client the Redis sink needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisSink publishes each batch as one JSON array on a pub/sub channel.
type RedisSink struct {
	pub     Publisher
	channel string
	logger  *zap.Logger
}

func NewRedisSink(pub Publisher, channel string, logger *zap.Logger) *RedisSink {
	return &RedisSink{pub: pub, channel: channel, logger: util.OrNop(logger)}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Send(ctx context.Context, batch []domain.AnalyticsEvent) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal analytics batch: %w", err)
	}

	receivers, err := s.pub.Publish(ctx, s.channel, payload).Result()
	if err != nil {
		s.logger.Error("Analytics publish failed", zap.String("channel", s.channel), zap.Error(err))
		return fmt.Errorf("publish analytics batch: %w", err)
	}

	s.logger.Debug("Analytics batch published",
		zap.String("channel", s.channel),
		zap.Int("events", len(batch)),
		zap.Int64("receivers", receivers))
	return nil
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// DialRedis opens a client and pings it once.
func DialRedis(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	logger = util.OrNop(logger)
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logger.Info("Redis connected", zap.String("addr", addr), zap.Int("db", cfg.DB))
	return client, nil
}
