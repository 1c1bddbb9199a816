package tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/agent/ai"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/db"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/db/migrations"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/logging"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/store"
)

func newTestRegistry(t *testing.T) (*Registry, *store.TaskStore) {
	t.Helper()
	logging.Disable()
	migrations.QuietMode = true

	conn, err := db.Open(filepath.Join(t.TempDir(), "tools_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	tasks := store.NewTaskStore(conn)
	registry := NewRegistry()
	RegisterTaskTools(registry, tasks)
	return registry, tasks
}

func execute(t *testing.T, r *Registry, ownerID, name string, input any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(input)
	require.NoError(t, err)

	result := r.Execute(context.Background(), ownerID, &ai.ToolCall{
		ID:    "call_test",
		Name:  name,
		Input: raw,
	})
	require.NotNil(t, result)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Content), &payload),
		"tool result content must be JSON: %s", result.Content)
	return payload
}

func TestRegistryListsToolsInRegistrationOrder(t *testing.T) {
	registry, _ := newTestRegistry(t)

	defs := registry.List()
	require.Len(t, defs, 5)

	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
		assert.NotEmpty(t, def.Description)
		assert.NotEmpty(t, def.InputSchema)
	}
	assert.Equal(t, []string{"add_task", "list_tasks", "complete_task", "delete_task", "update_task"}, names)
}

func TestAddAndListTasks(t *testing.T) {
	registry, _ := newTestRegistry(t)
	owner := "owner-1"

	added := execute(t, registry, owner, "add_task", map[string]any{
		"title":       "buy milk",
		"description": "2 liters",
	})
	assert.Equal(t, true, added["success"])
	assert.Equal(t, "add_task", added["action"])
	assert.Equal(t, "buy milk", added["title"])
	assert.Equal(t, "pending", added["status"])
	assert.Contains(t, added["message"], "created successfully")

	listed := execute(t, registry, owner, "list_tasks", map[string]any{})
	assert.Equal(t, true, listed["success"])
	assert.Equal(t, float64(1), listed["total"])
	assert.Equal(t, "all", listed["filter"])

	tasks, ok := listed["tasks"].([]any)
	require.True(t, ok)
	require.Len(t, tasks, 1)
	first := tasks[0].(map[string]any)
	assert.Equal(t, "buy milk", first["title"])
	assert.Equal(t, "2 liters", first["description"])
}

func TestAddTaskRejectsEmptyTitle(t *testing.T) {
	registry, _ := newTestRegistry(t)

	result := execute(t, registry, "owner-1", "add_task", map[string]any{"title": "   "})
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "add_task", result["action"])
	assert.NotEmpty(t, result["error"])
}

func TestListTasksInvalidFilter(t *testing.T) {
	registry, _ := newTestRegistry(t)

	result := execute(t, registry, "owner-1", "list_tasks", map[string]any{"status": "bogus"})
	assert.Equal(t, false, result["success"])
	assert.Contains(t, result["error"], "invalid status filter")
	assert.Contains(t, result["message"], "'bogus'")
}

func TestListTasksStatusPartition(t *testing.T) {
	registry, tasks := newTestRegistry(t)
	owner := "owner-1"
	ctx := context.Background()

	open, err := tasks.Create(ctx, owner, "open task", "")
	require.NoError(t, err)
	done, err := tasks.Create(ctx, owner, "done task", "")
	require.NoError(t, err)
	_, _, err = tasks.Complete(ctx, owner, done.ID)
	require.NoError(t, err)

	pending := execute(t, registry, owner, "list_tasks", map[string]any{"status": "pending"})
	assert.Equal(t, float64(1), pending["total"])
	onlyPending := pending["tasks"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(open.ID), onlyPending["id"])

	completed := execute(t, registry, owner, "list_tasks", map[string]any{"status": "completed"})
	assert.Equal(t, float64(1), completed["total"])
	onlyDone := completed["tasks"].([]any)[0].(map[string]any)
	assert.Equal(t, float64(done.ID), onlyDone["id"])
}

func TestCompleteTaskIdempotent(t *testing.T) {
	registry, tasks := newTestRegistry(t)
	owner := "owner-1"

	task, err := tasks.Create(context.Background(), owner, "finish report", "")
	require.NoError(t, err)

	first := execute(t, registry, owner, "complete_task", map[string]any{"task_id": task.ID})
	assert.Equal(t, true, first["success"])
	assert.Equal(t, "completed", first["status"])
	assert.Equal(t, false, first["no_op"])
	assert.Contains(t, first["message"], "has been marked as completed")

	second := execute(t, registry, owner, "complete_task", map[string]any{"task_id": task.ID})
	assert.Equal(t, true, second["success"])
	assert.Equal(t, true, second["no_op"])
	assert.Contains(t, second["message"], "was already marked as completed")
}

func TestCrossOwnerAccessLooksLikeNotFound(t *testing.T) {
	registry, tasks := newTestRegistry(t)

	task, err := tasks.Create(context.Background(), "owner-1", "private task", "")
	require.NoError(t, err)

	for _, name := range []string{"complete_task", "delete_task"} {
		result := execute(t, registry, "owner-2", name, map[string]any{"task_id": task.ID})
		assert.Equal(t, false, result["success"], "tool %s", name)
		assert.Contains(t, result["message"], "Could not find task", "tool %s", name)
	}

	updated := execute(t, registry, "owner-2", "update_task", map[string]any{
		"task_id": task.ID,
		"title":   "hijacked",
	})
	assert.Equal(t, false, updated["success"])

	// The real owner still sees the task untouched.
	got, err := tasks.Get(context.Background(), "owner-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "private task", got.Title)
}

func TestDeleteTask(t *testing.T) {
	registry, tasks := newTestRegistry(t)
	owner := "owner-1"

	task, err := tasks.Create(context.Background(), owner, "throwaway", "")
	require.NoError(t, err)

	deleted := execute(t, registry, owner, "delete_task", map[string]any{"task_id": task.ID})
	assert.Equal(t, true, deleted["success"])
	assert.Contains(t, deleted["message"], "has been deleted")

	again := execute(t, registry, owner, "delete_task", map[string]any{"task_id": task.ID})
	assert.Equal(t, false, again["success"])
}

func TestUpdateTask(t *testing.T) {
	registry, tasks := newTestRegistry(t)
	owner := "owner-1"

	task, err := tasks.Create(context.Background(), owner, "old title", "old desc")
	require.NoError(t, err)

	result := execute(t, registry, owner, "update_task", map[string]any{
		"task_id": task.ID,
		"title":   "new title",
		"status":  "completed",
	})
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "new title", result["title"])
	assert.Equal(t, "old desc", result["description"])
	assert.Equal(t, "completed", result["status"])
	assert.ElementsMatch(t, []any{"title", "status"}, result["updated_fields"])

	noFields := execute(t, registry, owner, "update_task", map[string]any{"task_id": task.ID})
	assert.Equal(t, false, noFields["success"])
	assert.Contains(t, noFields["message"], "No changes were provided")

	badStatus := execute(t, registry, owner, "update_task", map[string]any{
		"task_id": task.ID,
		"status":  "archived",
	})
	assert.Equal(t, false, badStatus["success"])
}

func TestUnknownToolReturnsErrorResult(t *testing.T) {
	registry, _ := newTestRegistry(t)

	result := registry.Execute(context.Background(), "owner-1", &ai.ToolCall{
		ID:   "call_x",
		Name: "drop_database",
	})
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Content), &payload))
	assert.Equal(t, false, payload["success"])
}
