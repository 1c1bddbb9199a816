// Package tools is the catalog of operations the model may invoke. Each
// tool carries a JSON schema for the model and a handler that executes
// against the task store with the authenticated owner injected
// server-side. Neither the model nor the HTTP caller can ever supply the
// owner id themselves.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/agent/ai"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/logging"
)

// Result is the structured outcome of a tool execution. Content is a JSON
// document with at least success and message fields.
type Result struct {
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// Tool interface that all tools must implement
type Tool interface {
	// Name returns the tool's unique name
	Name() string

	// Description returns a description for the model
	Description() string

	// Schema returns the JSON schema for the tool's input
	Schema() json.RawMessage

	// Execute runs the tool for the given owner with the given input
	Execute(ctx context.Context, ownerID string, input json.RawMessage) (*Result, error)
}

// Registry manages available tools
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tools[tool.Name()]; !ok {
		r.order = append(r.order, tool.Name())
	}
	r.tools[tool.Name()] = tool
}

// Get returns a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all tools as model tool definitions, in registration order.
func (r *Registry) List() []ai.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]ai.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		defs = append(defs, ai.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.Schema(),
		})
	}
	return defs
}

// Execute runs one requested tool call and always returns a result. An
// unknown name or a failing handler becomes a structured error result;
// nothing here is allowed to abort the caller's turn.
func (r *Registry) Execute(ctx context.Context, ownerID string, call *ai.ToolCall) *Result {
	r.mu.RLock()
	tool, ok := r.tools[call.Name]
	r.mu.RUnlock()

	if !ok {
		logging.Warnf("[Registry] Unknown tool requested: %s", call.Name)
		return errorResult(call.Name, "unsupported operation",
			fmt.Sprintf("The operation %q is not supported.", call.Name))
	}

	input := call.Input
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}

	result, err := tool.Execute(ctx, ownerID, input)
	if err != nil {
		logging.Errorf("[Registry] Tool %s failed: %v", call.Name, err)
		return errorResult(call.Name, err.Error(),
			fmt.Sprintf("Error executing %s: %v", call.Name, err))
	}
	return result
}

// errorResult builds the failure payload shared by all tools.
func errorResult(action, errMsg, message string) *Result {
	content, _ := json.Marshal(map[string]any{
		"success": false,
		"action":  action,
		"error":   errMsg,
		"message": message,
	})
	return &Result{Content: string(content), IsError: true}
}

// okResult marshals a success payload.
func okResult(payload map[string]any) *Result {
	content, _ := json.Marshal(payload)
	return &Result{Content: string(content)}
}
