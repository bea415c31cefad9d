package ai

import (
	"encoding/json"
	"sort"

	"google.golang.org/genai"
)

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
func num() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }
func strList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: str()}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func arrayOf(item *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: item}
}

var (
	titleVariantsSchema = arrayOf(object(map[string]*genai.Schema{
		"title":     str(),
		"strategy":  str(),
		"ctr_score": num(),
		"sentiment": str(),
	}, "title", "strategy", "ctr_score", "sentiment"))

	viralTopicsSchema = arrayOf(object(map[string]*genai.Schema{
		"topic_name":           str(),
		"viral_coefficient":    num(),
		"why_now":              str(),
		"competitor_blindspot": str(),
		"suggested_title":      str(),
		"retention_strategy":   str(),
	}, "topic_name", "viral_coefficient", "why_now", "competitor_blindspot", "suggested_title", "retention_strategy"))

	scriptHooksSchema = arrayOf(object(map[string]*genai.Schema{
		"archetype":             str(),
		"psychological_trigger": str(),
		"script":                str(),
		"visual_instruction":    str(),
	}, "archetype", "psychological_trigger", "script", "visual_instruction"))

	scriptOutlineSchema = arrayOf(object(map[string]*genai.Schema{
		"timestamp":       str(),
		"section":         str(),
		"content_brief":   str(),
		"retention_logic": str(),
		"visual_cue":      str(),
	}, "timestamp", "section", "content_brief", "retention_logic", "visual_cue"))

	audiencePersonasSchema = arrayOf(object(map[string]*genai.Schema{
		"name":             str(),
		"age_range":        str(),
		"motivations":      strList(),
		"pain_points":      strList(),
		"content_triggers": strList(),
		"capture_strategy": str(),
		"authority_score":  num(),
	}, "name", "age_range", "motivations", "pain_points", "content_triggers", "capture_strategy", "authority_score"))

	patternInterruptsSchema = arrayOf(object(map[string]*genai.Schema{
		"timestamp":       str(),
		"trigger_point":   str(),
		"disruption_type": str(),
		"instruction":     str(),
		"impact_score":    num(),
	}, "timestamp", "trigger_point", "disruption_type", "instruction", "impact_score"))

	channelInsightsSchema = arrayOf(object(map[string]*genai.Schema{
		"title":       str(),
		"description": str(),
		"type":        str(),
		"priority":    str(),
		"confidence":  num(),
	}, "title", "description", "type", "priority", "confidence"))

	videoSEOSchema = object(map[string]*genai.Schema{
		"optimization_score":    num(),
		"keyword_suggestions":   strList(),
		"tag_analysis":          str(),
		"description_snippet":   str(),
		"niche_competitiveness": str(),
	}, "optimization_score", "keyword_suggestions", "tag_analysis", "description_snippet", "niche_competitiveness")

	trendForecastSchema = arrayOf(object(map[string]*genai.Schema{
		"trend_name":    str(),
		"probability":   num(),
		"peak_date":     str(),
		"niche_impact":  str(),
		"specific_hook": str(),
	}, "trend_name", "probability", "peak_date", "niche_impact", "specific_hook"))

	ctrSimulationSchema = object(map[string]*genai.Schema{
		"predicted_ctr":        num(),
		"audience_affinity":    str(),
		"emotional_trigger":    str(),
		"optimization_tip":     str(),
		"competitor_benchmark": str(),
	}, "predicted_ctr", "audience_affinity", "emotional_trigger", "optimization_tip", "competitor_benchmark")

	competitorReportSchema = object(map[string]*genai.Schema{
		"competitor":       str(),
		"positioning":      str(),
		"strengths":        strList(),
		"weaknesses":       strList(),
		"content_gaps":     strList(),
		"threat_level":     num(),
		"recommended_move": str(),
	}, "competitor", "positioning", "strengths", "weaknesses", "content_gaps", "threat_level", "recommended_move")
)

// SchemaHint renders a schema as a JSON skeleton ({"title":"string"}) for
// providers that only take the shape in the prompt.
func SchemaHint(s *genai.Schema) string {
	if s == nil {
		return ""
	}
	b, err := json.Marshal(skeleton(s))
	if err != nil {
		return ""
	}
	return string(b)
}

func skeleton(s *genai.Schema) any {
	switch s.Type {
	case genai.TypeArray:
		if s.Items == nil {
			return []any{}
		}
		return []any{skeleton(s.Items)}
	case genai.TypeObject:
		keys := make([]string, 0, len(s.Properties))
		for k := range s.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			out[k] = skeleton(s.Properties[k])
		}
		return out
	case genai.TypeNumber, genai.TypeInteger:
		return "number"
	case genai.TypeBoolean:
		return "boolean"
	default:
		return "string"
	}
}
