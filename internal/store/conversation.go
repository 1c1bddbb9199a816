package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message roles stored in the conversation log. Only user and assistant
// turns are persisted; tool traffic stays within a single request.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation groups the messages of one chat thread for one owner.
type Conversation struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one turn in a conversation. The log is append-only: messages
// are never updated or deleted.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// ConversationStore persists conversations and their message log.
type ConversationStore struct {
	db *sql.DB
}

// NewConversationStore creates a conversation store over the shared
// database connection.
func NewConversationStore(db *sql.DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// Create starts a new conversation for the owner.
func (s *ConversationStore) Create(ctx context.Context, ownerID string) (*Conversation, error) {
	id := uuid.New().String()
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, owner_id, created_at) VALUES (?, ?, ?)`,
		id, ownerID, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &Conversation{ID: id, OwnerID: ownerID, CreatedAt: now}, nil
}

// Get returns the conversation if it exists and belongs to the owner;
// otherwise ErrNotFound.
func (s *ConversationStore) Get(ctx context.Context, ownerID, conversationID string) (*Conversation, error) {
	var c Conversation
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, created_at FROM conversations WHERE id = ? AND owner_id = ?`,
		conversationID, ownerID,
	).Scan(&c.ID, &c.OwnerID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt = time.Unix(createdAt, 0)
	return &c, nil
}

// AppendMessage adds one message to the conversation log.
func (s *ConversationStore) AppendMessage(ctx context.Context, conversationID, role, content string) (*Message, error) {
	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, role, content, created_at) VALUES (?, ?, ?, ?)`,
		conversationID, role, content, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read message id: %w", err)
	}
	return &Message{
		ID:             id,
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      now,
	}, nil
}

// History returns the conversation's messages in chronological order,
// ties broken by insertion order. A positive limit returns only the most
// recent messages; zero returns everything.
func (s *ConversationStore) History(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	query := `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
	`
	args := []any{conversationID}
	if limit > 0 {
		// Take the last N, then restore chronological order.
		query = `
			SELECT id, conversation_id, role, content, created_at
			FROM (
				SELECT id, conversation_id, role, content, created_at
				FROM messages
				WHERE conversation_id = ?
				ORDER BY created_at DESC, id DESC
				LIMIT ?
			) ORDER BY created_at ASC, id ASC
		`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &createdAt); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(createdAt, 0)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListByOwner returns the owner's conversations, newest first.
func (s *ConversationStore) ListByOwner(ctx context.Context, ownerID string) ([]Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner_id, created_at FROM conversations WHERE owner_id = ? ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		var c Conversation
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.OwnerID, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt = time.Unix(createdAt, 0)
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}
