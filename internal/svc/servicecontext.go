package svc

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/agent/ai"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/agent/orchestrator"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/agent/tools"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/config"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/db"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/logging"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/store"
)

// ServiceContext wires the stores, tool registry, model provider, and
// orchestrator over one shared database handle. Handlers receive it at
// registration time.
type ServiceContext struct {
	Config *config.Config
	DB     *sql.DB

	Users         *store.UserStore
	Tasks         *store.TaskStore
	Conversations *store.ConversationStore

	Registry     *tools.Registry
	Provider     ai.Provider
	Orchestrator *orchestrator.Orchestrator
}

// NewServiceContext opens the database, runs migrations, and builds the
// full dependency graph from the config.
func NewServiceContext(cfg *config.Config) (*ServiceContext, error) {
	conn, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	users := store.NewUserStore(conn)
	tasksStore := store.NewTaskStore(conn)
	conversations := store.NewConversationStore(conn)

	registry := tools.NewRegistry()
	tools.RegisterTaskTools(registry, tasksStore)

	provider := buildProvider(cfg)

	orch := orchestrator.New(conversations, registry, provider,
		orchestrator.WithHistoryLimit(cfg.Chat.HistoryLimit),
		orchestrator.WithQueryTimeout(time.Duration(cfg.Oracle.TimeoutSeconds)*time.Second),
		orchestrator.WithMaxTokens(cfg.Oracle.MaxTokens),
	)

	return &ServiceContext{
		Config:        cfg,
		DB:            conn,
		Users:         users,
		Tasks:         tasksStore,
		Conversations: conversations,
		Registry:      registry,
		Provider:      provider,
		Orchestrator:  orch,
	}, nil
}

// buildProvider returns nil when no API key is configured; chat turns then
// degrade to the apology reply instead of failing at startup.
func buildProvider(cfg *config.Config) ai.Provider {
	if cfg.Oracle.APIKey == "" {
		logging.Warnf("[svc] No model API key configured, chat will be degraded")
		return nil
	}
	switch cfg.Oracle.Provider {
	case "openai":
		return ai.NewOpenAIProvider(cfg.Oracle.APIKey, cfg.Oracle.Model)
	case "anthropic", "":
		return ai.NewAnthropicProvider(cfg.Oracle.APIKey, cfg.Oracle.Model)
	default:
		logging.Errorf("[svc] Unknown model provider %q, chat will be degraded", cfg.Oracle.Provider)
		return nil
	}
}

// Close releases the database handle.
func (s *ServiceContext) Close() error {
	return s.DB.Close()
}
