package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across assetgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Tasks
	FieldTask     = "task"
	FieldKind     = "kind"
	FieldStrategy = "strategy"
	FieldFormat   = "format"

	// Files and paths
	FieldCatalog = "catalog"
	FieldOutput  = "output"
	FieldFolder  = "folder"
	FieldRoot    = "root"

	// Outcome
	FieldStatus  = "status"
	FieldReason  = "reason"
	FieldError   = "error"
	FieldEntries = "entries"
	FieldBytes   = "bytes"

	// Timing
	FieldDurationMS = "duration_ms"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a generation run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger("runner")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
