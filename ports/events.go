package ports

import (
	"context"

	"github.com/academia-alliance/academia/core"
)

// EventPublisher publishes workflow changes to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, event core.Event) error
}
