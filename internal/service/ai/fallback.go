package ai

import "github.com/kapu/socialintel-go/internal/domain"

// Stock suggestions shown when a tool fails and the caller opts into them.

const FallbackThumbnailURL = "https://images.unsplash.com/photo-1550745165-9bc0b252726f?auto=format&fit=crop&q=80&w=1200"

func FallbackTitles(topic string) []domain.TitleVariant {
	return []domain.TitleVariant{
		{Title: "I Spent 100 Hours on " + topic, Strategy: "Extreme Effort", CTRScore: 12.4, Sentiment: "Urgent"},
		{Title: "Why Most People FAIL at " + topic, Strategy: "Contrarianism", CTRScore: 15.1, Sentiment: "Extreme"},
	}
}

func FallbackCTR() domain.CTRSimulation {
	return domain.CTRSimulation{
		PredictedCTR:        7.2,
		AudienceAffinity:    "General Tech Audience",
		EmotionalTrigger:    "Curiosity",
		OptimizationTip:     "Add a high-contrast adjective to the first 3 words.",
		CompetitorBenchmark: "Above Average",
	}
}

func FallbackTrends() []domain.TrendPrediction {
	return []domain.TrendPrediction{
		{
			TrendName:    "Spatial Computing Deep-Dives",
			Probability:  92,
			PeakDate:     "Next Tuesday",
			NicheImpact:  "Tech, Education",
			SpecificHook: "Why Apple Vision Pro users are returning devices (The Retention Secret)",
		},
		{
			TrendName:    "Anti-AI Authenticity",
			Probability:  88,
			PeakDate:     "Weekend",
			NicheImpact:  "Vlog, Lifestyle",
			SpecificHook: "I stopped using AI for 24 hours and my engagement tripled.",
		},
	}
}
