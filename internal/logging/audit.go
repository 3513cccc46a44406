package logging

import (
	"context"
	"log/slog"

	"github.com/you/assetsvc/domain"
)

// AuditLogger writes domain audit events as structured log records
type AuditLogger struct {
	l *slog.Logger
}

// NewAuditLogger creates an audit logger on top of l
func NewAuditLogger(l *slog.Logger) *AuditLogger {
	return &AuditLogger{l: l.With("component", "audit")}
}

// LogEvent implements domain.AuditLogger
func (a *AuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	attrs := []any{
		"event", string(event.EventType),
		"success", event.Success,
		"timestamp", event.Timestamp,
	}
	if event.UserID != 0 {
		attrs = append(attrs, "user_id", event.UserID)
	}
	if event.Email != "" {
		attrs = append(attrs, "email", event.Email)
	}
	if event.ErrorMsg != "" {
		attrs = append(attrs, "error", event.ErrorMsg)
	}
	for k, v := range event.Metadata {
		attrs = append(attrs, k, v)
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	a.l.Log(ctx, level, "audit", attrs...)
}

var _ domain.AuditLogger = (*AuditLogger)(nil)
