package notifications

import (
	"context"
	"errors"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/events"
	"github.com/enclaveworks/enclave-sdk/pkg/eventbus"
)

// EventBusPublisher bridges the airlock domain to the in-process event bus.
// A bus with no subscribers for an event type counts as delivered; downstream
// consumers opt in per event type.
type EventBusPublisher struct {
	bus eventbus.EventBusWithError
}

func NewEventBusPublisher(bus eventbus.EventBusWithError) events.Publisher {
	return &EventBusPublisher{bus: bus}
}

func (p *EventBusPublisher) PublishStatusChanged(ctx context.Context, evt events.StatusChanged) error {
	return p.publish(evt)
}

func (p *EventBusPublisher) PublishNotification(ctx context.Context, evt events.Notification) error {
	return p.publish(evt)
}

func (p *EventBusPublisher) publish(evt interface{}) error {
	err := p.bus.PublishE(evt)
	if errors.Is(err, eventbus.ErrNoSubscribers) {
		return nil
	}
	return err
}
