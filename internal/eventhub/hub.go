package eventhub

import (
	"context"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
)

// Broker carries events between service instances. Nil is a valid hub broker:
// events are then delivered to local clients only.
type Broker interface {
	Publish(ctx context.Context, event models.ComplaintEvent) error
	Subscribe(ctx context.Context) (<-chan models.ComplaintEvent, error)
}

// Hub tracks connected clients and broadcasts complaint events to them. All
// client-map access happens inside Run, so no locking is needed.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.ComplaintEvent

	broker Broker
	log    *logging.Logger
}

// NewHub creates a hub. broker may be nil.
func NewHub(broker Broker, log *logging.Logger) *Hub {
	return &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.ComplaintEvent, 16),
		broker:       broker,
		log:          log,
	}
}

// Run is the hub's dispatcher loop. It exits when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	var fromBroker <-chan models.ComplaintEvent
	if h.broker != nil {
		ch, err := h.broker.Subscribe(ctx)
		if err != nil {
			h.log.Error("subscribe to event broker", "error", err)
		} else {
			fromBroker = ch
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.RegisterCh:
			h.Clients[client.ID()] = client
			h.log.Debug("client registered", "id", client.ID())

		case client := <-h.UnregisterCh:
			if current, ok := h.Clients[client.ID()]; ok && current == client {
				delete(h.Clients, client.ID())
				client.Close()
				h.log.Debug("client unregistered", "id", client.ID())
			}

		case event := <-h.BroadcastCh:
			h.dispatch(event)

		case event, ok := <-fromBroker:
			if !ok {
				fromBroker = nil
				continue
			}
			h.dispatch(event)
		}
	}
}

// Publish hands an event to the broker when one is configured, otherwise to
// local clients directly. The broker subscription loops it back to every
// instance, this one included.
func (h *Hub) Publish(ctx context.Context, event models.ComplaintEvent) {
	if h.broker != nil {
		if err := h.broker.Publish(ctx, event); err == nil {
			return
		}
		h.log.Error("broker publish failed, delivering locally", "type", event.Type)
	}
	h.BroadcastCh <- event
}

func (h *Hub) dispatch(event models.ComplaintEvent) {
	for id, client := range h.Clients {
		select {
		case client.SendChannel() <- event:
		default:
			// Slow consumer: drop the connection rather than stall the loop.
			delete(h.Clients, id)
			client.Close()
			h.log.Warn("dropped slow client", "id", id)
		}
	}
}
