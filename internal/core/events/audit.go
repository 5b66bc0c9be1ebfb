package events

import (
	"context"
	"log/slog"
)

// NewAuditHandler returns a handler that writes one structured log record
// per event.
func NewAuditHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		attrs := []any{
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload(),
		}
		if be, ok := event.(BaseEvent); ok && be.Actor != "" {
			attrs = append(attrs, "actor", be.Actor)
		}
		logger.InfoContext(ctx, "audit", attrs...)
		return nil
	}
}
