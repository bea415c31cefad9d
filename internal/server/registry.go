package server

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/kapu/socialintel-go/internal/service/ai"
)

// ErrUnknownTool is returned when a tool name has no registered handler.
var ErrUnknownTool = errors.New("unknown tool")

// ToolRequest is the shared body of the /api/ai/:tool routes. Each tool
// reads the fields it needs.
type ToolRequest struct {
	Topic   string          `json:"topic"`
	Niche   string          `json:"niche"`
	Title   string          `json:"title"`
	Idea    string          `json:"idea"`
	URLs    []string        `json:"urls"`
	Channel json.RawMessage `json:"channel"`
}

// ToolResult is a tool's value plus why it may be empty. Fallback, when
// set, is served instead of Value on failure if the caller asks for it.
type ToolResult struct {
	Value    any
	Reason   ai.FailureReason
	Err      error
	Fallback any
}

func fromResult[T any](r ai.Result[T]) ToolResult {
	return ToolResult{Value: r.Value, Reason: r.Reason, Err: r.Err}
}

// Tool is one structured AI operation exposed over HTTP.
type Tool struct {
	Name string
	// Required lists the request fields that must be non-empty.
	Required []string
	Run      func(ctx context.Context, req ToolRequest) ToolResult
}

// ToolRegistry stores tools keyed by lowercase name.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]Tool)}
}

// Register adds or replaces a tool.
func (r *ToolRegistry) Register(tool Tool) {
	if tool.Name == "" || tool.Run == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[strings.ToLower(tool.Name)] = tool
}

func (r *ToolRegistry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[strings.ToLower(name)]
	return tool, ok
}

// Names returns the registered tool names in sorted order.
func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *ToolRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// missingField returns the first required field left empty, or "".
func (t Tool) missingField(req ToolRequest) string {
	for _, field := range t.Required {
		var empty bool
		switch field {
		case "topic":
			empty = strings.TrimSpace(req.Topic) == ""
		case "niche":
			empty = strings.TrimSpace(req.Niche) == ""
		case "title":
			empty = strings.TrimSpace(req.Title) == ""
		case "idea":
			empty = strings.TrimSpace(req.Idea) == ""
		case "urls":
			empty = len(req.URLs) == 0
		}
		if empty {
			return field
		}
	}
	return ""
}
