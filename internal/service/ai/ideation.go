package ai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kapu/socialintel-go/internal/constants"
	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/prompt"
	"github.com/kapu/socialintel-go/internal/util"
)

var ErrInvalidInput = stderrors.New("invalid input")

// Generator is the part of ModelManager the ideation tools use.
type Generator interface {
	GenerateJSON(ctx context.Context, operation, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error)
	GenerateText(ctx context.Context, operation, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error)
}

// Models names the text models per call site tier.
type Models struct {
	Flash string
	Pro   string
}

// Ideation runs the structured AI tools. Every method returns the empty
// value of its shape on failure and never panics.
type Ideation struct {
	gen     Generator
	models  Models
	prompts *prompt.PromptBuilder
	logger  *zap.Logger
}

func NewIdeation(gen Generator, models Models, logger *zap.Logger) *Ideation {
	return &Ideation{
		gen:     gen,
		models:  models,
		prompts: prompt.NewPromptBuilder(),
		logger:  util.OrNop(logger),
	}
}

func generateList[T any](ctx context.Context, s *Ideation, operation, text, model string, schema *genai.Schema) Result[[]T] {
	out := make([]T, 0)
	meta, err := s.gen.GenerateJSON(ctx, operation, text, PresetBalanced, &out, &GenerateOptions{
		Model:  model,
		Schema: schema,
	})
	if err != nil {
		s.logFailure(operation, err)
		return fail([]T{}, err)
	}
	if out == nil {
		out = []T{}
	}
	return succeed(out, meta)
}

func generateObject[T any](ctx context.Context, s *Ideation, operation, text, model string, schema *genai.Schema) Result[T] {
	var out T
	meta, err := s.gen.GenerateJSON(ctx, operation, text, PresetBalanced, &out, &GenerateOptions{
		Model:  model,
		Schema: schema,
	})
	if err != nil {
		s.logFailure(operation, err)
		var zero T
		return fail(zero, err)
	}
	return succeed(out, meta)
}

func (s *Ideation) logFailure(operation string, err error) {
	s.logger.Warn("AI tool failed",
		zap.String("operation", operation),
		zap.String("reason", string(reasonFor(err))),
		zap.Error(err))
}

func sanitize(input string) string {
	return util.SanitizeInput(input, constants.AIInputLimits.MaxPromptInputLength)
}

func (s *Ideation) TitleVariants(ctx context.Context, topic string) Result[[]domain.TitleVariant] {
	text := prompt.BuildTitleVariants(prompt.TitleVariantsData{Topic: sanitize(topic)})
	return generateList[domain.TitleVariant](ctx, s, "title_variants", text, s.models.Flash, titleVariantsSchema)
}

func (s *Ideation) ViralTopics(ctx context.Context, niche string) Result[[]domain.ViralTopic] {
	return generateList[domain.ViralTopic](ctx, s, "viral_topics", prompt.BuildViralTopics(sanitize(niche)), s.models.Flash, viralTopicsSchema)
}

func (s *Ideation) ScriptHooks(ctx context.Context, title string) Result[[]domain.ScriptHook] {
	return generateList[domain.ScriptHook](ctx, s, "script_hooks", prompt.BuildScriptHooks(sanitize(title)), s.models.Flash, scriptHooksSchema)
}

func (s *Ideation) ScriptOutline(ctx context.Context, title, niche string) Result[[]domain.ScriptStep] {
	text := prompt.BuildScriptOutline(prompt.ScriptOutlineData{Title: sanitize(title), Niche: sanitize(niche)})
	return generateList[domain.ScriptStep](ctx, s, "script_outline", text, s.models.Flash, scriptOutlineSchema)
}

// AudiencePersonas uses the larger model.
func (s *Ideation) AudiencePersonas(ctx context.Context, niche string) Result[[]domain.AudiencePersona] {
	return generateList[domain.AudiencePersona](ctx, s, "audience_personas", prompt.BuildAudiencePersonas(sanitize(niche)), s.models.Pro, audiencePersonasSchema)
}

func (s *Ideation) PatternInterrupts(ctx context.Context, idea string) Result[[]domain.PatternInterrupt] {
	return generateList[domain.PatternInterrupt](ctx, s, "pattern_interrupts", prompt.BuildPatternInterrupts(sanitize(idea)), s.models.Flash, patternInterruptsSchema)
}

// ChannelInsights serializes channelData into the prompt as JSON.
func (s *Ideation) ChannelInsights(ctx context.Context, channelData any) Result[[]domain.ChannelInsight] {
	raw, err := json.Marshal(channelData)
	if err != nil {
		err = fmt.Errorf("%w: channel data: %v", ErrInvalidInput, err)
		s.logFailure("channel_insights", err)
		return fail([]domain.ChannelInsight{}, err)
	}
	return generateList[domain.ChannelInsight](ctx, s, "channel_insights", prompt.BuildChannelInsights(string(raw)), s.models.Flash, channelInsightsSchema)
}

func (s *Ideation) VideoSEO(ctx context.Context, title string) Result[domain.SEOReport] {
	res := generateObject[domain.SEOReport](ctx, s, "video_seo", prompt.BuildVideoSEO(sanitize(title)), s.models.Flash, videoSEOSchema)
	res.Value = res.Value.Normalized()
	return res
}

func (s *Ideation) TrendForecast(ctx context.Context) Result[[]domain.TrendPrediction] {
	return generateList[domain.TrendPrediction](ctx, s, "trend_forecast", prompt.BuildTrendForecast(), s.models.Flash, trendForecastSchema)
}

func (s *Ideation) SimulateCTR(ctx context.Context, title string) Result[domain.CTRSimulation] {
	return generateObject[domain.CTRSimulation](ctx, s, "ctr_simulation", prompt.BuildCTRSimulation(sanitize(title)), s.models.Flash, ctrSimulationSchema)
}

// AnalyzeCompetitor reports on the first page in metas, using the rest as
// market context.
func (s *Ideation) AnalyzeCompetitor(ctx context.Context, niche string, metas []domain.CompetitorMeta) Result[domain.CompetitorReport] {
	if len(metas) == 0 {
		err := fmt.Errorf("%w: no competitor pages", ErrInvalidInput)
		s.logFailure("competitor_analysis", err)
		return fail(domain.CompetitorReport{}.Normalized(), err)
	}

	pages := make([]prompt.CompetitorPage, 0, len(metas))
	for _, m := range metas {
		pages = append(pages, prompt.CompetitorPage{
			Title:       sanitize(m.Title),
			Description: sanitize(m.Description),
			URL:         m.URL,
		})
	}

	text, err := s.prompts.BuildCompetitorAnalysis(prompt.CompetitorAnalysisData{
		Niche:       sanitize(niche),
		Competitors: pages,
	})
	if err != nil {
		s.logFailure("competitor_analysis", err)
		return fail(domain.CompetitorReport{}.Normalized(), err)
	}

	res := generateObject[domain.CompetitorReport](ctx, s, "competitor_analysis", text, s.models.Flash, competitorReportSchema)
	res.Value = res.Value.Normalized()
	return res
}

const (
	oracleInterrupted = "I apologize, the neural link was interrupted. Please re-state your query."
	oracleUnreachable = "Error connecting to the Oracle. Please check your network."
)

// OracleChat continues a growth-advice conversation. On failure the value
// is a fixed apology and Reason is set.
func (s *Ideation) OracleChat(ctx context.Context, channelTitle string, history []domain.ChatTurn, message string) Result[string] {
	message = strings.TrimSpace(message)
	if message == "" {
		return fail(oracleInterrupted, fmt.Errorf("%w: empty message", ErrInvalidInput))
	}

	if n := constants.AIInputLimits.MaxChatHistory; len(history) > n {
		history = history[len(history)-n:]
	}

	system, err := s.prompts.BuildOracleSystem(prompt.OracleSystemData{ChannelTitle: channelTitle})
	if err != nil {
		s.logFailure("oracle_chat", err)
		return fail(oracleUnreachable, err)
	}

	reply, meta, err := s.gen.GenerateText(ctx, "oracle_chat", util.SanitizeInput(message, constants.AIInputLimits.MaxPromptInputLength), PresetBalanced, &GenerateOptions{
		Model:             s.models.Flash,
		SystemInstruction: system,
		History:           history,
	})
	if err != nil {
		s.logFailure("oracle_chat", err)
		if reasonFor(err) == ReasonEmpty {
			return fail(oracleInterrupted, err)
		}
		return fail(oracleUnreachable, err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return fail(oracleInterrupted, ErrEmptyResponse)
	}
	return succeed(reply, meta)
}
