package prompt

type TitleVariantsData struct {
	Topic string
}

type ScriptOutlineData struct {
	Title string
	Niche string
}

type ThumbnailData struct {
	Title string
	Style string
}

type VoiceLineData struct {
	Voice string
	Text  string
}

// CompetitorAnalysisData feeds the competitor_analysis template.
type CompetitorAnalysisData struct {
	Niche       string
	Competitors []CompetitorPage
}

type CompetitorPage struct {
	Index       int
	Title       string
	Description string
	URL         string
}

type OracleSystemData struct {
	ChannelTitle string
	Niche        string
}
