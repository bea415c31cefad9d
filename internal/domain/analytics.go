package domain

// EventType classifies an interaction event.
type EventType string

const (
	EventPageView      EventType = "page_view"
	EventFeatureUsage  EventType = "feature_usage"
	EventButtonClick   EventType = "button_click"
	EventAPICall       EventType = "api_call"
	EventAuth          EventType = "auth_event"
	EventAIInteraction EventType = "ai_interaction"
)

// Valid reports whether t is one of the known event kinds.
func (t EventType) Valid() bool {
	switch t {
	case EventPageView, EventFeatureUsage, EventButtonClick, EventAPICall, EventAuth, EventAIInteraction:
		return true
	default:
		return false
	}
}

// AnalyticsEvent is one queued interaction. Timestamp is unix milliseconds.
type AnalyticsEvent struct {
	Event      EventType      `json:"event"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  int64          `json:"timestamp"`
	SessionID  string         `json:"sessionId"`
}
