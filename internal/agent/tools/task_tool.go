package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/store"
)

// RegisterTaskTools adds the five task-management tools to the registry.
func RegisterTaskTools(r *Registry, tasks *store.TaskStore) {
	r.Register(&addTaskTool{tasks: tasks})
	r.Register(&listTasksTool{tasks: tasks})
	r.Register(&completeTaskTool{tasks: tasks})
	r.Register(&deleteTaskTool{tasks: tasks})
	r.Register(&updateTaskTool{tasks: tasks})
}

// notFoundResult is the shared payload for a task that is absent or owned
// by someone else. The two cases are indistinguishable on purpose.
func notFoundResult(action string, taskID int64) *Result {
	return errorResult(action,
		fmt.Sprintf("Task with ID %d not found", taskID),
		fmt.Sprintf("Could not find task with ID %d. Please check the ID and try again.", taskID))
}

type addTaskTool struct {
	tasks *store.TaskStore
}

func (t *addTaskTool) Name() string { return "add_task" }

func (t *addTaskTool) Description() string {
	return "Add a new task to the todo list"
}

func (t *addTaskTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"title": {"type": "string", "description": "The title of the task"},
			"description": {"type": "string", "description": "Optional description of the task"}
		},
		"required": ["title"]
	}`)
}

func (t *addTaskTool) Execute(ctx context.Context, ownerID string, input json.RawMessage) (*Result, error) {
	var args struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	task, err := t.tasks.Create(ctx, ownerID, args.Title, args.Description)
	if err != nil {
		if store.IsValidation(err) {
			return errorResult("add_task", err.Error(),
				fmt.Sprintf("Failed to create task: %v", err)), nil
		}
		return nil, err
	}

	return okResult(map[string]any{
		"success":     true,
		"action":      "add_task",
		"task_id":     task.ID,
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"message":     fmt.Sprintf("Task '%s' has been created successfully.", task.Title),
	}), nil
}

type listTasksTool struct {
	tasks *store.TaskStore
}

func (t *listTasksTool) Name() string { return "list_tasks" }

func (t *listTasksTool) Description() string {
	return "List all tasks or filter by status (all, pending, completed)"
}

func (t *listTasksTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"status": {
				"type": "string",
				"enum": ["all", "pending", "completed"],
				"description": "Filter tasks by status"
			}
		},
		"required": []
	}`)
}

func (t *listTasksTool) Execute(ctx context.Context, ownerID string, input json.RawMessage) (*Result, error) {
	var args struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if args.Status == "" {
		args.Status = store.FilterAll
	}

	tasks, err := t.tasks.List(ctx, ownerID, args.Status)
	if err != nil {
		if store.IsValidation(err) {
			return errorResult("list_tasks", err.Error(),
				fmt.Sprintf("Invalid status filter '%s'. Please use 'all', 'pending', or 'completed'.", args.Status)), nil
		}
		return nil, err
	}

	taskList := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		taskList = append(taskList, map[string]any{
			"id":          task.ID,
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"created_at":  task.CreatedAt.Format(time.RFC3339),
			"updated_at":  task.UpdatedAt.Format(time.RFC3339),
		})
	}

	filterDesc := ""
	if args.Status != store.FilterAll {
		filterDesc = fmt.Sprintf(" with status '%s'", args.Status)
	}
	return okResult(map[string]any{
		"success": true,
		"action":  "list_tasks",
		"tasks":   taskList,
		"total":   len(taskList),
		"filter":  args.Status,
		"message": fmt.Sprintf("Found %d task(s)%s.", len(taskList), filterDesc),
	}), nil
}

type completeTaskTool struct {
	tasks *store.TaskStore
}

func (t *completeTaskTool) Name() string { return "complete_task" }

func (t *completeTaskTool) Description() string {
	return "Mark a task as completed"
}

func (t *completeTaskTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"task_id": {"type": "integer", "description": "The ID of the task to complete"}
		},
		"required": ["task_id"]
	}`)
}

func (t *completeTaskTool) Execute(ctx context.Context, ownerID string, input json.RawMessage) (*Result, error) {
	var args struct {
		TaskID int64 `json:"task_id"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	task, alreadyDone, err := t.tasks.Complete(ctx, ownerID, args.TaskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundResult("complete_task", args.TaskID), nil
		}
		return nil, err
	}

	message := fmt.Sprintf("Task '%s' has been marked as completed.", task.Title)
	if alreadyDone {
		message = fmt.Sprintf("Task '%s' was already marked as completed.", task.Title)
	}
	return okResult(map[string]any{
		"success": true,
		"action":  "complete_task",
		"task_id": task.ID,
		"title":   task.Title,
		"status":  task.Status,
		"no_op":   alreadyDone,
		"message": message,
	}), nil
}

type deleteTaskTool struct {
	tasks *store.TaskStore
}

func (t *deleteTaskTool) Name() string { return "delete_task" }

func (t *deleteTaskTool) Description() string {
	return "Delete a task from the todo list"
}

func (t *deleteTaskTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"task_id": {"type": "integer", "description": "The ID of the task to delete"}
		},
		"required": ["task_id"]
	}`)
}

func (t *deleteTaskTool) Execute(ctx context.Context, ownerID string, input json.RawMessage) (*Result, error) {
	var args struct {
		TaskID int64 `json:"task_id"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	deleted, err := t.tasks.Delete(ctx, ownerID, args.TaskID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return notFoundResult("delete_task", args.TaskID), nil
	}

	return okResult(map[string]any{
		"success": true,
		"action":  "delete_task",
		"task_id": args.TaskID,
		"message": fmt.Sprintf("Task with ID %d has been deleted.", args.TaskID),
	}), nil
}

type updateTaskTool struct {
	tasks *store.TaskStore
}

func (t *updateTaskTool) Name() string { return "update_task" }

func (t *updateTaskTool) Description() string {
	return "Update a task's details (title, description, or status)"
}

func (t *updateTaskTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"task_id": {"type": "integer", "description": "The ID of the task to update"},
			"title": {"type": "string", "description": "The new title for the task"},
			"description": {"type": "string", "description": "The new description for the task"},
			"status": {
				"type": "string",
				"enum": ["pending", "completed"],
				"description": "The new status for the task"
			}
		},
		"required": ["task_id"]
	}`)
}

func (t *updateTaskTool) Execute(ctx context.Context, ownerID string, input json.RawMessage) (*Result, error) {
	var args struct {
		TaskID      int64   `json:"task_id"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	var updates []string
	if args.Title != nil {
		updates = append(updates, "title")
	}
	if args.Description != nil {
		updates = append(updates, "description")
	}
	if args.Status != nil {
		updates = append(updates, "status")
	}
	if len(updates) == 0 {
		return errorResult("update_task", "no fields to update",
			"No changes were provided. Specify a new title, description, or status."), nil
	}

	task, err := t.tasks.Update(ctx, ownerID, args.TaskID, store.TaskUpdate{
		Title:       args.Title,
		Description: args.Description,
		Status:      args.Status,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundResult("update_task", args.TaskID), nil
		}
		if store.IsValidation(err) {
			return errorResult("update_task", err.Error(),
				fmt.Sprintf("Failed to update task: %v", err)), nil
		}
		return nil, err
	}

	return okResult(map[string]any{
		"success":        true,
		"action":         "update_task",
		"task_id":        task.ID,
		"title":          task.Title,
		"description":    task.Description,
		"status":         task.Status,
		"updated_fields": updates,
		"message":        fmt.Sprintf("Task '%s' has been updated. Changed: %s.", task.Title, strings.Join(updates, ", ")),
	}), nil
}
