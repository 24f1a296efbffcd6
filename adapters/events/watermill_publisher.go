package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/academia-alliance/academia/core"
	"github.com/academia-alliance/academia/ports"
	"github.com/google/uuid"
)

// WatermillPublisher implements the EventPublisher interface using Watermill.
// Each event type goes to its own topic: prefix + event type.
type WatermillPublisher struct {
	publisher   message.Publisher
	topicPrefix string
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher, topicPrefix string) ports.EventPublisher {
	return &WatermillPublisher{
		publisher:   publisher,
		topicPrefix: topicPrefix,
	}
}

// Topic returns the topic an event type is published to
func (p *WatermillPublisher) Topic(eventType core.EventType) string {
	return p.topicPrefix + string(eventType)
}

// Publish publishes a workflow event
func (p *WatermillPublisher) Publish(ctx context.Context, event core.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("record_id", event.RecordID)

	if err := p.publisher.Publish(p.Topic(event.Type), msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NoopPublisher discards events. Used when no event stream is configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that drops every event
func NewNoopPublisher() ports.EventPublisher {
	return NoopPublisher{}
}

// Publish does nothing
func (NoopPublisher) Publish(context.Context, core.Event) error {
	return nil
}
