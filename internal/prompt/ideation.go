package prompt

import (
	"fmt"
	"strings"
)

// BuildTitleVariants asks for five high-CTR titles for a topic.
func BuildTitleVariants(data TitleVariantsData) string {
	return fmt.Sprintf(`YouTube Growth Analysis Request:
Topic: "%s"

Generate 5 viral-optimized video titles using high-CTR triggers (Curiosity gap, psychological framing, negativity bias, authority).
Provide:
- title: The title
- strategy: Logic behind the hook
- ctr_score: Estimated CTR percentage (0-20)
- sentiment: 'Positive', 'Urgent', or 'Extreme'`, data.Topic)
}

func BuildViralTopics(niche string) string {
	return fmt.Sprintf(`Act as a world-class YouTube Growth Strategist.
Niche: "%s"
Identify 5 "Exploding Blue Ocean" topics that are about to trend but have low competition right now.

For each topic provide:
- topic_name: High-impact name
- viral_coefficient: 0-100 (predicted growth rate)
- why_now: Cultural or platform trigger
- competitor_blindspot: What others are missing
- suggested_title: High-CTR title
- retention_strategy: One unique hook idea`, niche)
}

func BuildScriptHooks(title string) string {
	return fmt.Sprintf(`Generate 3 high-retention psychological hook variations for a video titled: "%s".
Each hook should target a specific psychological trigger.`, title)
}

func BuildScriptOutline(data ScriptOutlineData) string {
	return fmt.Sprintf(`Generate a 'Neural-Optimized' high-retention script outline for: "%s" in the "%s" niche.

Structure should include:
- The Hook (0-15s)
- The Re-Hook (Engagement Spike at 1m)
- The 'Pattern Interrupt' (at 3m)
- The Climax/Payoff
- The 'Viral Loop' Outro (CTA to next video)`, data.Title, data.Niche)
}

func BuildAudiencePersonas(niche string) string {
	return fmt.Sprintf(`Create 3 detailed audience personas for the "%s" niche.
For each persona, define their core motivations, pain points, content triggers, and a "Strategy to Capture" their attention.`, niche)
}

func BuildPatternInterrupts(idea string) string {
	return fmt.Sprintf(`Analyze this video concept: "%s".
Identify 5 critical moments where audience attention will fatigue and suggest high-impact "Pattern Interrupts" (visual or audio disruptions).`, idea)
}

// BuildChannelInsights embeds the caller's channel snapshot verbatim.
func BuildChannelInsights(channelJSON string) string {
	return "Analyze: " + channelJSON
}

func BuildVideoSEO(title string) string {
	return fmt.Sprintf(`SEO Analysis for: "%s"`, title)
}

func BuildTrendForecast() string {
	return `Act as a futuristic trend forecasting engine for YouTube and Instagram content creators.
Based on current global tech and social culture, predict 5 emerging "content waves" for the next 14 days.

Provide:
- trend_name: High-impact name
- probability: Confidence percentage (0-100)
- peak_date: When it will go viral
- niche_impact: Which categories (e.g., Tech, Lifestyle, Finance)
- specific_hook: A concrete video idea for this trend`
}

func BuildCTRSimulation(title string) string {
	return fmt.Sprintf(`Act as a Neural Click-Through Rate (CTR) Simulator for YouTube.
Analyze the following video title: "%s"

Provide a detailed predictive analysis:
- predicted_ctr: Estimated percentage (0-15)
- audience_affinity: Who will click? (e.g. "Tech Enthusiasts", "Beginners")
- emotional_trigger: What emotion does it evoke?
- optimization_tip: One concrete way to improve it.
- competitor_benchmark: How does it rank vs global averages? (Higher/Lower)`, title)
}

// BuildJSONFallback wraps a prompt for providers without schema support.
func BuildJSONFallback(prompt, schemaHint string) string {
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nRespond with JSON only, no prose and no code fences.")
	if schemaHint != "" {
		sb.WriteString("\nThe JSON must match this shape:\n")
		sb.WriteString(schemaHint)
	}
	return sb.String()
}
