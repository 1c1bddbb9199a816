package types

import "github.com/Ali-Hamas/Todo-Chat-Bot/internal/store"

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type ChatResponse struct {
	Reply          string `json:"response"`
	ConversationID string `json:"conversation_id"`
	Error          bool   `json:"error,omitempty"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type UpdateTaskRequest struct {
	ID          int64   `path:"id" json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type GetTaskRequest struct {
	ID int64 `path:"id" json:"-"`
}

type ListTasksRequest struct {
	Status string `form:"status" json:"-"`
}

type TaskListResponse struct {
	Tasks []store.Task `json:"tasks"`
	Total int          `json:"total"`
}

type DeleteTaskResponse struct {
	Success bool `json:"success"`
}

type ConversationListResponse struct {
	Conversations []store.Conversation `json:"conversations"`
	Total         int                  `json:"total"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
}
