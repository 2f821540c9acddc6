package lognotify

import (
	"context"

	"github.com/ccis-arch/avacc/internal/platform/logger"
	"github.com/ccis-arch/avacc/internal/ports/notify"
)

// Publisher escribe los eventos en el log. Se usa cuando no hay broker configurado.
type Publisher struct {
	log logger.Logger
}

func New(log logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{log: log}
}

func (p *Publisher) Publish(_ context.Context, e notify.Event) error {
	p.log.Info("event published", map[string]any{
		"event_type":  e.Type,
		"occurred_at": e.OccurredAt,
		"payload":     e.Payload,
	})
	return nil
}
