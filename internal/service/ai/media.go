package ai

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kapu/socialintel-go/internal/constants"
	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/prompt"
	"github.com/kapu/socialintel-go/internal/util"
	"github.com/kapu/socialintel-go/pkg/errors"
)

var (
	ErrNoMedia   = stderrors.New("no media in response")
	ErrPollLimit = stderrors.New("video generation poll limit reached")
)

const DefaultThumbnailStyle = "High Contrast"

// progressMessages rotate while a clip renders.
var progressMessages = []string{
	"Synthesizing neural frames...",
	"Adjusting cinematic lighting...",
	"Engineering motion vectors...",
	"Finalizing high-fidelity output...",
	"Polishing grain and texture...",
}

// VideoModel starts long-running video generations (genai.Models).
type VideoModel interface {
	GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
}

// OperationPoller refreshes a video operation (genai.Operations).
type OperationPoller interface {
	GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation, config *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error)
}

type MediaModels struct {
	Image  string
	Speech string
	Video  string
}

type MediaOptions struct {
	PollInterval time.Duration
	// MaxPolls caps status requests; 0 polls until done or canceled.
	MaxPolls int
	// APIKey is appended to download links as the key query parameter.
	APIKey string
}

// Media generates thumbnails, speech and B-roll clips.
type Media struct {
	content ContentModel
	videos  VideoModel
	ops     OperationPoller
	models  MediaModels
	opts    MediaOptions
	logger  *zap.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewMedia(content ContentModel, videos VideoModel, ops OperationPoller, models MediaModels, opts MediaOptions, logger *zap.Logger) *Media {
	if opts.PollInterval <= 0 {
		opts.PollInterval = constants.VideoGenerationConfig.PollInterval
	}
	return &Media{
		content: content,
		videos:  videos,
		ops:     ops,
		models:  models,
		opts:    opts,
		logger:  util.OrNop(logger),
		sleep:   sleepContext,
	}
}

// NewMediaFromClient wires all three backends to one genai client.
func NewMediaFromClient(client *genai.Client, models MediaModels, opts MediaOptions, logger *zap.Logger) *Media {
	return NewMedia(client.Models, client.Models, client.Operations, models, opts, logger)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *Media) mediaFailure(kind string, err error) error {
	m.logger.Warn("Media generation failed",
		zap.String("kind", kind),
		zap.String("reason", string(reasonFor(err))),
		zap.Error(err))
	return errors.NewMediaError(kind+" generation failed", kind, err)
}

// GenerateThumbnail renders a 16:9 thumbnail concept for title.
func (m *Media) GenerateThumbnail(ctx context.Context, title, style string) Result[domain.GeneratedImage] {
	title = util.SanitizeInput(title, constants.AIInputLimits.MaxPromptInputLength)
	if title == "" {
		return fail(domain.GeneratedImage{}, m.mediaFailure("thumbnail", fmt.Errorf("%w: empty title", ErrInvalidInput)))
	}
	if strings.TrimSpace(style) == "" {
		style = DefaultThumbnailStyle
	}

	text := prompt.BuildThumbnail(prompt.ThumbnailData{Title: title, Style: style})
	resp, err := m.content.GenerateContent(ctx, m.models.Image, genai.Text(text), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{AspectRatio: constants.VideoGenerationConfig.ThumbnailAspect},
	})
	if err != nil {
		return fail(domain.GeneratedImage{}, m.mediaFailure("thumbnail", err))
	}

	blob := firstInlineData(resp)
	if blob == nil {
		return fail(domain.GeneratedImage{}, m.mediaFailure("thumbnail", ErrNoMedia))
	}

	return succeed(domain.GeneratedImage{
		MIMEType: blob.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(blob.Data),
	}, &GenerateMetadata{Provider: "Gemini", Model: m.models.Image})
}

// SynthesizeSpeech reads text with a prebuilt voice and returns raw
// 16-bit little-endian PCM at 24 kHz.
func (m *Media) SynthesizeSpeech(ctx context.Context, text, voice string) Result[[]byte] {
	text = util.SanitizeInput(text, constants.AIInputLimits.MaxPromptInputLength)
	if text == "" {
		return fail([]byte{}, m.mediaFailure("speech", fmt.Errorf("%w: empty text", ErrInvalidInput)))
	}
	if voice == "" {
		voice = domain.Voices[0]
	}
	if !domain.ValidVoice(voice) {
		return fail([]byte{}, m.mediaFailure("speech", fmt.Errorf("%w: unknown voice %q", ErrInvalidInput, voice)))
	}

	line := prompt.BuildVoiceLine(prompt.VoiceLineData{Voice: voice, Text: text})
	resp, err := m.content.GenerateContent(ctx, m.models.Speech, genai.Text(line), &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	})
	if err != nil {
		return fail([]byte{}, m.mediaFailure("speech", err))
	}

	blob := firstInlineData(resp)
	if blob == nil {
		return fail([]byte{}, m.mediaFailure("speech", ErrNoMedia))
	}

	return succeed(blob.Data, &GenerateMetadata{Provider: "Gemini", Model: m.models.Speech})
}

// GenerateBRoll submits a video job and polls it until done, the context
// ends or MaxPolls is reached. progress, when non-nil, is called after
// submission and after every poll.
func (m *Media) GenerateBRoll(ctx context.Context, req domain.BRollRequest, progress func(domain.BRollProgress)) Result[domain.BRollClip] {
	if progress == nil {
		progress = func(domain.BRollProgress) {}
	}

	req.Prompt = util.SanitizeInput(req.Prompt, constants.AIInputLimits.MaxPromptInputLength)
	if req.Prompt == "" {
		return fail(domain.BRollClip{}, m.mediaFailure("broll", fmt.Errorf("%w: empty prompt", ErrInvalidInput)))
	}
	if req.Resolution == "" {
		req.Resolution = domain.VideoResolution(constants.VideoGenerationConfig.DefaultRes)
	}
	if req.AspectRatio == "" {
		req.AspectRatio = domain.AspectRatio(constants.VideoGenerationConfig.DefaultAspect)
	}
	if req.Resolution != domain.Resolution720p && req.Resolution != domain.Resolution1080p {
		return fail(domain.BRollClip{}, m.mediaFailure("broll", fmt.Errorf("%w: resolution %q", ErrInvalidInput, req.Resolution)))
	}
	if req.AspectRatio != domain.AspectLandscape && req.AspectRatio != domain.AspectPortrait {
		return fail(domain.BRollClip{}, m.mediaFailure("broll", fmt.Errorf("%w: aspect ratio %q", ErrInvalidInput, req.AspectRatio)))
	}

	op, err := m.videos.GenerateVideos(ctx, m.models.Video, prompt.BuildBRoll(req.Prompt), nil, &genai.GenerateVideosConfig{
		NumberOfVideos: constants.VideoGenerationConfig.NumberOfVideos,
		Resolution:     string(req.Resolution),
		AspectRatio:    string(req.AspectRatio),
	})
	if err != nil {
		return fail(domain.BRollClip{}, m.mediaFailure("broll", err))
	}

	m.logger.Info("B-roll generation started",
		zap.String("operation", op.Name),
		zap.String("resolution", string(req.Resolution)),
		zap.String("aspect_ratio", string(req.AspectRatio)))
	progress(domain.BRollProgress{Poll: 0, Message: progressMessages[0]})

	polls := 0
	for !op.Done {
		if m.opts.MaxPolls > 0 && polls >= m.opts.MaxPolls {
			return fail(domain.BRollClip{Operation: op.Name, Polls: polls},
				m.mediaFailure("broll", fmt.Errorf("%w after %d polls", ErrPollLimit, polls)))
		}
		if err := m.sleep(ctx, m.opts.PollInterval); err != nil {
			return fail(domain.BRollClip{Operation: op.Name, Polls: polls}, m.mediaFailure("broll", err))
		}

		next, err := m.ops.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return fail(domain.BRollClip{Operation: op.Name, Polls: polls}, m.mediaFailure("broll", err))
		}
		op = next
		polls++

		progress(domain.BRollProgress{
			Poll:    polls,
			Message: progressMessages[polls%len(progressMessages)],
			Done:    op.Done,
		})
	}

	if len(op.Error) > 0 {
		return fail(domain.BRollClip{Operation: op.Name, Polls: polls},
			m.mediaFailure("broll", fmt.Errorf("operation %s failed: %v", op.Name, op.Error["message"])))
	}

	uri := videoURI(op)
	if uri == "" {
		return fail(domain.BRollClip{Operation: op.Name, Polls: polls}, m.mediaFailure("broll", ErrNoMedia))
	}

	link, err := withAPIKey(uri, m.opts.APIKey)
	if err != nil {
		return fail(domain.BRollClip{Operation: op.Name, Polls: polls}, m.mediaFailure("broll", err))
	}

	m.logger.Info("B-roll generation finished",
		zap.String("operation", op.Name),
		zap.Int("polls", polls))

	return succeed(domain.BRollClip{
		Operation:   op.Name,
		DownloadURL: link,
		Polls:       polls,
	}, &GenerateMetadata{Provider: "Gemini", Model: m.models.Video})
}

func videoURI(op *genai.GenerateVideosOperation) string {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return ""
	}
	gv := op.Response.GeneratedVideos[0]
	if gv == nil || gv.Video == nil {
		return ""
	}
	return gv.Video.URI
}

// withAPIKey sets the key query parameter, keeping any existing ones.
func withAPIKey(uri, key string) (string, error) {
	if key == "" {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse video uri: %w", err)
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
