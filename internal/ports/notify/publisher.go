package notify

import (
	"context"
	"time"
)

// Event es lo que se publica hacia afuera (broker o log).
type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

// Publisher publica eventos de dominio. La entrega es best-effort.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
