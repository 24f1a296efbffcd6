package service

import (
	"context"
	"time"

	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/ports"
)

// notifier publishes workflow events on a best-effort basis: the storage
// change has already happened, so a failed publish is logged, never returned.
type notifier struct {
	pub ports.EventPublisher
	log logger.Logger
	now func() time.Time
}

func newNotifier(pub ports.EventPublisher, log logger.Logger) notifier {
	return notifier{pub: pub, log: log, now: time.Now}
}

func (n notifier) emit(ctx context.Context, typ core.EventType, id core.ID, actor string) {
	event := core.Event{
		Type:       typ,
		RecordID:   id.Hex(),
		Actor:      actor,
		OccurredAt: n.now().UTC(),
	}
	if err := n.pub.Publish(ctx, event); err != nil {
		n.log.Warn(ctx, "failed to publish event",
			logger.String("type", string(typ)),
			logger.String("record_id", event.RecordID),
			logger.Error(err))
	}
}
