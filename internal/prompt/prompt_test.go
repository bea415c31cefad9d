package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeationPromptsEmbedInput(t *testing.T) {
	cases := map[string]struct {
		prompt string
		want   []string
	}{
		"titles":     {BuildTitleVariants(TitleVariantsData{Topic: "home espresso"}), []string{`Topic: "home espresso"`, "ctr_score"}},
		"topics":     {BuildViralTopics("retro gaming"), []string{`Niche: "retro gaming"`, "viral_coefficient"}},
		"hooks":      {BuildScriptHooks("I quit my job"), []string{`titled: "I quit my job"`}},
		"outline":    {BuildScriptOutline(ScriptOutlineData{Title: "T", Niche: "N"}), []string{`for: "T" in the "N" niche`, "Viral Loop"}},
		"personas":   {BuildAudiencePersonas("fitness"), []string{`"fitness" niche`}},
		"interrupts": {BuildPatternInterrupts("a vlog"), []string{`concept: "a vlog"`}},
		"seo":        {BuildVideoSEO("My Title"), []string{`SEO Analysis for: "My Title"`}},
		"ctr":        {BuildCTRSimulation("Click me"), []string{`title: "Click me"`, "predicted_ctr"}},
		"trends":     {BuildTrendForecast(), []string{"next 14 days", "specific_hook"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for _, w := range tc.want {
				assert.Contains(t, tc.prompt, w)
			}
		})
	}
}

func TestBuildChannelInsights(t *testing.T) {
	assert.Equal(t, `Analyze: {"title":"x"}`, BuildChannelInsights(`{"title":"x"}`))
}

func TestMediaPrompts(t *testing.T) {
	assert.Equal(t,
		"Read this hook with a zephyr style: Welcome back",
		BuildVoiceLine(VoiceLineData{Voice: "Zephyr", Text: "Welcome back"}),
	)
	assert.Equal(t,
		"Cinematic B-roll: city at night. Professional cinematography, high quality, 4k detail, cinematic lighting.",
		BuildBRoll("city at night"),
	)
	thumb := BuildThumbnail(ThumbnailData{Title: "Big News", Style: "Neon"})
	assert.True(t, strings.HasPrefix(thumb, `A high-conversion YouTube thumbnail for a video titled: "Big News". Style: Neon.`))
}

func TestBuildJSONFallback(t *testing.T) {
	out := BuildJSONFallback("base", `[{"title":"string"}]`)
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "JSON only")
	assert.Contains(t, out, `[{"title":"string"}]`)
}

func TestPromptBuilderCompetitorAnalysis(t *testing.T) {
	pb := NewPromptBuilder()

	out, err := pb.BuildCompetitorAnalysis(CompetitorAnalysisData{
		Niche: "tech",
		Competitors: []CompetitorPage{
			{Title: "TechGuru", Description: "Daily gadgets", URL: "https://example.com/@techguru"},
			{Title: "FutureDev", Description: "Code", URL: "https://example.com/@futuredev"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, `in the "tech" niche`)
	assert.Contains(t, out, "public channels")
	assert.Contains(t, out, "## Channel 1\n- Title: TechGuru")
	assert.Contains(t, out, "## Channel 2\n- Title: FutureDev")
	assert.Contains(t, out, "recommended_move")
}

func TestPromptBuilderOracleSystem(t *testing.T) {
	pb := NewPromptBuilder()

	plain, err := pb.BuildOracleSystem(OracleSystemData{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(plain, "You are the SocialIntel Growth Oracle"))
	assert.NotContains(t, plain, "runs the channel")

	withChannel, err := pb.BuildOracleSystem(OracleSystemData{ChannelTitle: "SocialIntel Demo"})
	require.NoError(t, err)
	assert.Contains(t, withChannel, `runs the channel "SocialIntel Demo"`)
}

func TestPromptBuilderUnknownTemplate(t *testing.T) {
	_, err := NewPromptBuilder().Render(TemplateName("missing.tmpl"), nil)
	assert.Error(t, err)
}
