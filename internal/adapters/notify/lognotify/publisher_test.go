package lognotify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ccis-arch/avacc/internal/platform/logger"
	"github.com/ccis-arch/avacc/internal/ports/notify"
)

func TestPublish_LogsEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := New(logger.Wrap(zap.New(core)))

	err := p.Publish(context.Background(), notify.Event{
		Type:       "reorder_alert.raised",
		OccurredAt: time.Now(),
		Payload:    map[string]any{"alert_type": "expired"},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage("event published").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "reorder_alert.raised", entries[0].ContextMap()["event_type"])
}
