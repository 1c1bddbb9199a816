package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/agent/ai"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/agent/tools"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/logging"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/store"
)

// systemPrompt steers the model toward the task tools. Task ids come from
// list_tasks; the model must never invent them.
const systemPrompt = `You are a friendly todo-list assistant. You help the user manage their tasks through the tools available to you.

Rules:
- Use add_task to create tasks, list_tasks to show them, complete_task to mark them done, update_task to change them, and delete_task to remove them.
- When the user refers to a task by name, call list_tasks first to find its id. Never guess task ids.
- Confirm every change you make in plain language, mentioning the task title.
- If a tool reports a failure, relay the problem to the user and suggest what to try instead.
- Keep replies short and conversational. Do not mention the tools themselves.`

// apologyReply is sent when the model cannot be reached. The user's message
// is still persisted so the conversation can be retried.
const apologyReply = "I'm sorry, I ran into a problem while processing that. Please try again in a moment."

const (
	defaultHistoryLimit = 50
	defaultQueryTimeout = 60 * time.Second
)

// Request is a single inbound chat turn.
type Request struct {
	OwnerID        string
	ConversationID string // empty starts a new conversation
	Message        string
}

// Result is the outcome of a turn. OracleErr reports that the reply is an
// apology because the model call failed; the turn is still persisted.
type Result struct {
	ConversationID string
	Reply          string
	OracleErr      bool
}

// Orchestrator runs one chat turn at a time: resolve the conversation, load
// its history, query the model, execute at most one round of tool calls, and
// persist the exchange. It holds no per-conversation state between calls.
type Orchestrator struct {
	conversations *store.ConversationStore
	registry      *tools.Registry
	provider      ai.Provider

	historyLimit int
	queryTimeout time.Duration
	maxTokens    int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithHistoryLimit caps how many prior messages are replayed to the model.
func WithHistoryLimit(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.historyLimit = n
		}
	}
}

// WithQueryTimeout bounds a single model call.
func WithQueryTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.queryTimeout = d
		}
	}
}

// WithMaxTokens sets the per-reply token budget passed to the provider.
func WithMaxTokens(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxTokens = n
		}
	}
}

// New creates an orchestrator. The provider may be nil; turns then degrade
// to the apology path instead of failing outright.
func New(conversations *store.ConversationStore, registry *tools.Registry, provider ai.Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		conversations: conversations,
		registry:      registry,
		provider:      provider,
		historyLimit:  defaultHistoryLimit,
		queryTimeout:  defaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// HandleMessage runs one chat turn for the owner. A missing conversation id
// creates a fresh conversation; an unknown or foreign one returns
// store.ErrNotFound.
func (o *Orchestrator) HandleMessage(ctx context.Context, req *Request) (*Result, error) {
	if req.Message == "" {
		return nil, store.NewValidationError("message must not be empty")
	}

	conv, err := o.resolveConversation(ctx, req)
	if err != nil {
		return nil, err
	}

	history, err := o.loadHistory(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	messages := append(history, ai.Message{Role: "user", Content: req.Message})

	reply, oracleErr := o.converse(ctx, req.OwnerID, messages)

	// Persist the user turn even when the model failed, so a retry carries
	// the full exchange. Tool messages are never persisted.
	if _, err := o.conversations.AppendMessage(ctx, conv.ID, store.RoleUser, req.Message); err != nil {
		return nil, err
	}
	if _, err := o.conversations.AppendMessage(ctx, conv.ID, store.RoleAssistant, reply); err != nil {
		return nil, err
	}

	return &Result{
		ConversationID: conv.ID,
		Reply:          reply,
		OracleErr:      oracleErr,
	}, nil
}

func (o *Orchestrator) resolveConversation(ctx context.Context, req *Request) (*store.Conversation, error) {
	if req.ConversationID != "" {
		return o.conversations.Get(ctx, req.OwnerID, req.ConversationID)
	}
	conv, err := o.conversations.Create(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	logging.Infof("[Orchestrator] Started conversation %s for owner %s", conv.ID, req.OwnerID)
	return conv, nil
}

func (o *Orchestrator) loadHistory(ctx context.Context, conversationID string) ([]ai.Message, error) {
	stored, err := o.conversations.History(ctx, conversationID, o.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	messages := make([]ai.Message, 0, len(stored))
	for _, m := range stored {
		messages = append(messages, ai.Message{Role: m.Role, Content: m.Content})
	}
	return messages, nil
}

// converse queries the model and runs at most one round of tool calls. It
// returns the final reply text and whether the model call failed.
func (o *Orchestrator) converse(ctx context.Context, ownerID string, messages []ai.Message) (string, bool) {
	if o.provider == nil {
		logging.Warnf("[Orchestrator] No model provider configured")
		return apologyReply, true
	}

	resp, err := o.query(ctx, messages)
	if err != nil {
		logging.Errorf("[Orchestrator] Model query failed: %v", err)
		return apologyReply, true
	}

	if len(resp.ToolCalls) == 0 {
		return o.replyText(resp.Text), false
	}

	results := make([]ai.ToolResult, 0, len(resp.ToolCalls))
	for i := range resp.ToolCalls {
		call := &resp.ToolCalls[i]
		logging.Infof("[Orchestrator] Executing tool %s for owner %s", call.Name, ownerID)
		res := o.registry.Execute(ctx, ownerID, call)
		results = append(results, ai.ToolResult{
			ToolCallID: call.ID,
			Content:    res.Content,
			IsError:    res.IsError,
		})
	}

	messages = append(messages,
		ai.Message{Role: "assistant", Content: resp.Text, ToolCalls: resp.ToolCalls},
		ai.Message{Role: "tool", ToolResults: results},
	)

	// One round only. Tool calls in the follow-up response are ignored.
	followup, err := o.query(ctx, messages)
	if err != nil {
		logging.Errorf("[Orchestrator] Follow-up query failed: %v", err)
		return apologyReply, true
	}
	return o.replyText(followup.Text), false
}

func (o *Orchestrator) query(ctx context.Context, messages []ai.Message) (*ai.QueryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, o.queryTimeout)
	defer cancel()

	return o.provider.Query(ctx, &ai.QueryRequest{
		System:    systemPrompt,
		Messages:  messages,
		Tools:     o.registry.List(),
		MaxTokens: o.maxTokens,
	})
}

func (o *Orchestrator) replyText(text string) string {
	if text == "" {
		return "I'm not sure how to help with that. You can ask me to add, list, update, complete, or delete tasks."
	}
	return text
}
