package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	// ContextKeyTaskID carries the background-task identifier of the current
	// orchestrator invocation, so lower layers can tag their log events.
	ContextKeyTaskID contextKey = "task_id"
)

// WithTaskID adds a background-task ID to the context
func WithTaskID(ctx context.Context, taskID string) context.Context {
	return context.WithValue(ctx, ContextKeyTaskID, taskID)
}

// TaskIDFromContext extracts the background-task ID from context
func TaskIDFromContext(ctx context.Context) string {
	if taskID, ok := ctx.Value(ContextKeyTaskID).(string); ok {
		return taskID
	}
	return ""
}
