package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Task statuses. A task is either still pending or completed; there is no
// other lifecycle state.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// List filters accepted by TaskStore.List.
const (
	FilterAll       = "all"
	FilterPending   = StatusPending
	FilterCompleted = StatusCompleted
)

// Task is a single todo item owned by exactly one user.
type Task struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskUpdate carries the optional fields of an update; nil fields are left
// unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

// TaskStore persists tasks. Every operation takes the owner id explicitly;
// a task is never visible outside its owner.
type TaskStore struct {
	db *sql.DB
}

// NewTaskStore creates a task store over the shared database connection.
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// Create inserts a new pending task for the owner.
func (s *TaskStore) Create(ctx context.Context, ownerID, title, description string) (*Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, NewValidationError("task title must not be empty")
	}

	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (owner_id, title, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		ownerID, title, description, StatusPending, now.Unix(), now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read task id: %w", err)
	}

	return &Task{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// List returns the owner's tasks, optionally filtered by status. An empty
// filter is treated as "all". Returns an empty slice when nothing matches.
func (s *TaskStore) List(ctx context.Context, ownerID, filter string) ([]Task, error) {
	if filter == "" {
		filter = FilterAll
	}

	query := `SELECT id, owner_id, title, description, status, created_at, updated_at FROM tasks WHERE owner_id = ?`
	args := []any{ownerID}

	switch filter {
	case FilterAll:
	case FilterPending, FilterCompleted:
		query += ` AND status = ?`
		args = append(args, filter)
	default:
		return nil, NewValidationError("invalid status filter %q: use 'all', 'pending', or 'completed'", filter)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Get returns a single task. A task owned by someone else is reported as
// ErrNotFound.
func (s *TaskStore) Get(ctx context.Context, ownerID string, taskID int64) (*Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, description, status, created_at, updated_at FROM tasks WHERE id = ? AND owner_id = ?`,
		taskID, ownerID,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

// Update changes only the supplied fields and refreshes updated_at.
func (s *TaskStore) Update(ctx context.Context, ownerID string, taskID int64, upd TaskUpdate) (*Task, error) {
	task, err := s.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, NewValidationError("task title must not be empty")
		}
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Status != nil {
		if *upd.Status != StatusPending && *upd.Status != StatusCompleted {
			return nil, NewValidationError("invalid status %q: use 'pending' or 'completed'", *upd.Status)
		}
		task.Status = *upd.Status
	}

	task.UpdatedAt = time.Now()
	_, err = s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ? AND owner_id = ?`,
		task.Title, task.Description, task.Status, task.UpdatedAt.Unix(), taskID, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Complete marks a task completed. Completing an already-completed task is
// a success; the second return value reports that nothing changed so the
// caller can phrase "was already done".
func (s *TaskStore) Complete(ctx context.Context, ownerID string, taskID int64) (*Task, bool, error) {
	task, err := s.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, false, err
	}

	if task.Status == StatusCompleted {
		return task, true, nil
	}

	task.Status = StatusCompleted
	task.UpdatedAt = time.Now()
	_, err = s.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE id = ? AND owner_id = ?`,
		StatusCompleted, task.UpdatedAt.Unix(), taskID, ownerID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to complete task: %w", err)
	}
	return task, false, nil
}

// Delete removes a task. Returns false when the task is absent or owned by
// someone else; callers map that to a not-found at the protocol boundary.
func (s *TaskStore) Delete(ctx context.Context, ownerID string, taskID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND owner_id = ?`,
		taskID, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var createdAt, updatedAt int64
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = time.Unix(createdAt, 0)
	t.UpdatedAt = time.Unix(updatedAt, 0)
	return &t, nil
}
