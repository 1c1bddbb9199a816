// Package ai is the narrow boundary to the external language-model
// service. The orchestrator only ever talks to the Provider interface, so
// tests can substitute a deterministic scripted provider.
package ai

import (
	"context"
	"encoding/json"
)

// Message is one turn of model input. History loaded from the
// conversation log has only Role and Content; the tool round within a
// single request additionally carries ToolCalls and ToolResults.
type Message struct {
	Role        string       `json:"role"` // user, assistant, tool, system
	Content     string       `json:"content,omitempty"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// ToolCall is a tool invocation requested by the model. The ID correlates
// the call with its result in the follow-up request.
type ToolCall struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// ToolResult is the outcome of one executed tool call.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
	IsError    bool   `json:"is_error,omitempty"`
}

// ToolDefinition describes a callable tool advertised to the model.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// QueryRequest is a single model invocation.
type QueryRequest struct {
	System    string           `json:"system,omitempty"`
	Messages  []Message        `json:"messages"`
	Tools     []ToolDefinition `json:"tools,omitempty"`
	MaxTokens int              `json:"max_tokens,omitempty"`
}

// QueryResponse is what the model answered: either plain text, or one or
// more tool invocations (possibly alongside preamble text).
type QueryResponse struct {
	Text      string     `json:"text,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Provider interface for language-model backends.
type Provider interface {
	// ID returns the provider identifier (e.g., "anthropic", "openai")
	ID() string

	// Query sends one request and blocks for the complete response.
	Query(ctx context.Context, req *QueryRequest) (*QueryResponse, error)
}
