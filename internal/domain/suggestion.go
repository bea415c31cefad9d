package domain

// TitleVariant is one generated title with its hook rationale.
type TitleVariant struct {
	Title     string  `json:"title"`
	Strategy  string  `json:"strategy"`
	CTRScore  float64 `json:"ctr_score"`
	Sentiment string  `json:"sentiment"`
}

type ViralTopic struct {
	TopicName           string  `json:"topic_name"`
	ViralCoefficient    float64 `json:"viral_coefficient"`
	WhyNow              string  `json:"why_now"`
	CompetitorBlindspot string  `json:"competitor_blindspot"`
	SuggestedTitle      string  `json:"suggested_title"`
	RetentionStrategy   string  `json:"retention_strategy"`
}

type ScriptHook struct {
	Archetype            string `json:"archetype"`
	PsychologicalTrigger string `json:"psychological_trigger"`
	Script               string `json:"script"`
	VisualInstruction    string `json:"visual_instruction"`
}

// ScriptStep is one timestamped section of a script outline.
type ScriptStep struct {
	Timestamp      string `json:"timestamp"`
	Section        string `json:"section"`
	ContentBrief   string `json:"content_brief"`
	RetentionLogic string `json:"retention_logic"`
	VisualCue      string `json:"visual_cue"`
}

type AudiencePersona struct {
	Name            string   `json:"name"`
	AgeRange        string   `json:"age_range"`
	Motivations     []string `json:"motivations"`
	PainPoints      []string `json:"pain_points"`
	ContentTriggers []string `json:"content_triggers"`
	CaptureStrategy string   `json:"capture_strategy"`
	AuthorityScore  float64  `json:"authority_score"`
}

type PatternInterrupt struct {
	Timestamp      string  `json:"timestamp"`
	TriggerPoint   string  `json:"trigger_point"`
	DisruptionType string  `json:"disruption_type"`
	Instruction    string  `json:"instruction"`
	ImpactScore    float64 `json:"impact_score"`
}

// ChannelInsight types are optimization, growth, alert or competitor;
// priorities are p1..p3.
type ChannelInsight struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Priority    string  `json:"priority"`
	Confidence  float64 `json:"confidence"`
}

type SEOReport struct {
	OptimizationScore    float64  `json:"optimization_score"`
	KeywordSuggestions   []string `json:"keyword_suggestions"`
	TagAnalysis          string   `json:"tag_analysis"`
	DescriptionSnippet   string   `json:"description_snippet"`
	NicheCompetitiveness string   `json:"niche_competitiveness"`
}

// Normalized returns r with a non-nil keyword list so empty and filled
// reports share one JSON shape.
func (r SEOReport) Normalized() SEOReport {
	if r.KeywordSuggestions == nil {
		r.KeywordSuggestions = []string{}
	}
	return r
}

type TrendPrediction struct {
	TrendName    string  `json:"trend_name"`
	Probability  float64 `json:"probability"`
	PeakDate     string  `json:"peak_date"`
	NicheImpact  string  `json:"niche_impact"`
	SpecificHook string  `json:"specific_hook"`
}

type CTRSimulation struct {
	PredictedCTR        float64 `json:"predicted_ctr"`
	AudienceAffinity    string  `json:"audience_affinity"`
	EmotionalTrigger    string  `json:"emotional_trigger"`
	OptimizationTip     string  `json:"optimization_tip"`
	CompetitorBenchmark string  `json:"competitor_benchmark"`
}

// CompetitorReport compares the caller's niche against a scraped
// competitor page.
type CompetitorReport struct {
	Competitor      string   `json:"competitor"`
	Positioning     string   `json:"positioning"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	ContentGaps     []string `json:"content_gaps"`
	ThreatLevel     float64  `json:"threat_level"`
	RecommendedMove string   `json:"recommended_move"`
}

// Normalized returns r with non-nil lists.
func (r CompetitorReport) Normalized() CompetitorReport {
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Weaknesses == nil {
		r.Weaknesses = []string{}
	}
	if r.ContentGaps == nil {
		r.ContentGaps = []string{}
	}
	return r
}

// CompetitorMeta is the Open Graph metadata of a public channel page.
type CompetitorMeta struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
}

// ChatTurn is one message of an oracle conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)
