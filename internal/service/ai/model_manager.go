package ai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kapu/socialintel-go/internal/constants"
	"github.com/kapu/socialintel-go/internal/util"
	"github.com/kapu/socialintel-go/pkg/errors"
)

var (
	ErrCircuitOpen   = stderrors.New("AI service unavailable (circuit open)")
	ErrEmptyResponse = stderrors.New("empty response")
	ErrInvalidJSON   = stderrors.New("invalid JSON")
)

var (
	statusCodeRe = regexp.MustCompile(`\b([45]\d{2})\b`)
	jsonCodeRe   = regexp.MustCompile(`"code":\s*(\d{3})`)
)

// ModelManager routes generation to Gemini and, when configured, falls
// back to OpenAI. A circuit breaker stops calls after repeated service
// failures.
type ModelManager struct {
	primary        JSONProvider
	fallback       JSONProvider
	logger         *zap.Logger
	circuitBreaker *util.CircuitBreaker
}

type ModelManagerConfig struct {
	GeminiAPIKey       string
	OpenAIAPIKey       string
	DefaultGeminiModel string
	DefaultOpenAIModel string
	EnableFallback     bool
}

// NewModelManager creates the Gemini client and returns it alongside the
// manager so media generation can share it.
func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, *genai.Client, error) {
	logger = util.OrNop(logger)

	geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	defaultGemini := cfg.DefaultGeminiModel
	if defaultGemini == "" {
		defaultGemini = "gemini-3-flash-preview"
	}

	defaultOpenAI := cfg.DefaultOpenAIModel
	if defaultOpenAI == "" {
		defaultOpenAI = "gpt-5-mini"
	}

	gemini := NewGeminiProvider(geminiClient.Models, defaultGemini, logger)

	var fallback JSONProvider
	if cfg.EnableFallback {
		if openaiProvider := NewOpenAIProvider(cfg.OpenAIAPIKey, defaultOpenAI, logger); openaiProvider != nil {
			logger.Info("OpenAI fallback enabled", zap.String("model", defaultOpenAI))
			fallback = openaiProvider
		}
	}
	if fallback == nil {
		logger.Info("OpenAI fallback disabled")
	}

	return NewModelManagerWithProviders(gemini, fallback, logger), geminiClient, nil
}

// NewModelManagerWithProviders wires explicit providers; fallback may be nil.
func NewModelManagerWithProviders(primary, fallback JSONProvider, logger *zap.Logger) *ModelManager {
	mm := &ModelManager{
		primary:  primary,
		fallback: fallback,
		logger:   util.OrNop(logger),
	}

	mm.circuitBreaker = util.NewCircuitBreaker(
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		constants.CircuitBreakerConfig.HealthCheckInterval,
		mm.healthCheckPing,
		mm.logger,
	)

	return mm
}

// GenerateJSON generates with the schema in opts and decodes into dest.
func (mm *ModelManager) GenerateJSON(ctx context.Context, operation, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error) {
	var options GenerateOptions
	if opts != nil {
		options = *opts
	}
	options.JSONMode = true

	result, metadata, err := mm.generate(ctx, operation, prompt, preset, &options)
	if err != nil {
		return nil, err
	}
	if err := mm.decodeJSON(result.Text, metadata, dest); err != nil {
		return nil, errors.NewAIError("AI returned an unusable response", operation, metadata.Provider, err)
	}
	return metadata, nil
}

// GenerateText returns the raw model text.
func (mm *ModelManager) GenerateText(ctx context.Context, operation, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	result, metadata, err := mm.generate(ctx, operation, prompt, preset, opts)
	if err != nil {
		return "", nil, err
	}
	return result.Text, metadata, nil
}

func (mm *ModelManager) generate(ctx context.Context, operation, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, *GenerateMetadata, error) {
	if !mm.circuitBreaker.CanExecute() {
		status := mm.circuitBreaker.GetStatus()
		nextRetry := "unknown"
		if status.NextRetryTime != nil {
			nextRetry = status.NextRetryTime.Format(time.RFC3339)
		}

		mm.logger.Error("AI service unavailable (Circuit OPEN)",
			zap.String("operation", operation),
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
			zap.String("next_retry", nextRetry),
		)

		return ProviderResult{}, nil, errors.NewAIError("AI service temporarily unavailable", operation, "", ErrCircuitOpen)
	}

	primaryResult, primaryErr := mm.invokeProvider(ctx, mm.primary, prompt, preset, opts)
	if primaryErr == nil {
		mm.circuitBreaker.RecordSuccess()
		return primaryResult, &GenerateMetadata{
			Provider: mm.primary.Name(),
			Model:    primaryResult.Model,
		}, nil
	}

	if mm.fallback != nil && ctx.Err() == nil {
		fallbackResult, fallbackErr := mm.invokeProvider(ctx, mm.fallback, prompt, preset, opts)
		if fallbackErr == nil {
			mm.circuitBreaker.RecordSuccess()
			return fallbackResult, &GenerateMetadata{
				Provider:     mm.fallback.Name(),
				Model:        fallbackResult.Model,
				UsedFallback: true,
			}, nil
		}

		mm.recordFailure(primaryErr)
		mm.recordFailure(fallbackErr)
		return ProviderResult{}, nil, errors.NewAIError("AI generation failed", operation, mm.fallback.Name(), fallbackErr)
	}

	mm.recordFailure(primaryErr)
	return ProviderResult{}, nil, errors.NewAIError("AI generation failed", operation, providerName(mm.primary), primaryErr)
}

func providerName(p JSONProvider) string {
	if p == nil {
		return ""
	}
	return p.Name()
}

func (mm *ModelManager) invokeProvider(ctx context.Context, provider JSONProvider, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	if provider == nil {
		return ProviderResult{}, fmt.Errorf("model provider is not configured")
	}
	return provider.Generate(ctx, prompt, preset, opts)
}

func (mm *ModelManager) decodeJSON(text string, metadata *GenerateMetadata, dest any) error {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return fmt.Errorf("%w from %s", ErrEmptyResponse, metadata.Provider)
	}

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		mm.logger.Error("Failed to unmarshal JSON response",
			zap.String("provider", metadata.Provider),
			zap.Error(err),
			zap.String("response_preview", util.Preview(cleaned, 200)),
		)
		return fmt.Errorf("%w from %s: %v", ErrInvalidJSON, metadata.Provider, err)
	}

	return nil
}

func (mm *ModelManager) recordFailure(err error) {
	if !isServiceFailure(err) {
		return
	}

	timeout := constants.CircuitBreakerConfig.ResetTimeout
	if isRateLimitError(err) {
		timeout = constants.CircuitBreakerConfig.RateLimitTimeout
	}

	mm.circuitBreaker.RecordFailure(timeout)
}

func (mm *ModelManager) healthCheckPing() bool {
	mm.logger.Info("Health Check: Testing AI services...")

	ctx, cancel := context.WithTimeout(context.Background(), constants.CircuitBreakerConfig.HealthCheckTimeout)
	defer cancel()

	primaryOK := mm.primary != nil && mm.primary.Ping(ctx)
	fallbackOK := mm.fallback != nil && mm.fallback.Ping(ctx)
	healthy := primaryOK || fallbackOK

	mm.logger.Info("Health Check: Result",
		zap.Bool("primary", primaryOK),
		zap.Bool("fallback", fallbackOK),
		zap.Bool("healthy", healthy),
	)

	return healthy
}

// statusCode extracts an HTTP status from provider errors.
func statusCode(err error) int {
	var oaiErr *openai.Error
	if stderrors.As(err, &oaiErr) {
		return oaiErr.StatusCode
	}

	msg := err.Error()
	if m := jsonCodeRe.FindStringSubmatch(msg); len(m) > 1 {
		if code, convErr := strconv.Atoi(m[1]); convErr == nil {
			return code
		}
	}
	if m := statusCodeRe.FindStringSubmatch(msg); len(m) > 1 {
		if code, convErr := strconv.Atoi(m[1]); convErr == nil {
			return code
		}
	}
	return 0
}

// isServiceFailure reports errors that say the backend is unhealthy, as
// opposed to a bad prompt or a canceled request.
func isServiceFailure(err error) bool {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return false
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "ETIMEDOUT") {
		return true
	}
	if isRateLimitError(err) {
		return true
	}

	code := statusCode(err)
	return code >= 500 && code < 600
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	if statusCode(err) == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Rate limit") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (mm *ModelManager) GetCircuitStatus() util.CircuitBreakerStatus {
	return mm.circuitBreaker.GetStatus()
}

func (mm *ModelManager) ResetCircuit() {
	mm.circuitBreaker.Reset()
}
