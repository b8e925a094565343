package eventhub_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"complainthub/backend/internal/eventhub"
	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := eventhub.NewHub(nil, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newMockClient("conn_A")

	hub.RegisterCh <- client
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, "conn_A")

	hub.UnregisterCh <- client
	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, hub.Clients, "conn_A")
	assert.True(t, client.Closed())
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := eventhub.NewHub(nil, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	clientA := newMockClient("conn_A")
	clientB := newMockClient("conn_B")
	hub.RegisterCh <- clientA
	hub.RegisterCh <- clientB
	time.Sleep(100 * time.Millisecond)

	event := models.ComplaintEvent{
		Type:      models.EventComplaintCreated,
		Complaint: models.Complaint{ID: 42, Title: "Leak", Status: models.StatusPending},
	}
	hub.Publish(ctx, event)
	time.Sleep(100 * time.Millisecond)

	for _, client := range []*MockClient{clientA, clientB} {
		select {
		case got := <-client.RecvChannel:
			assert.Equal(t, models.EventComplaintCreated, got.Type)
			assert.Equal(t, int64(42), got.Complaint.ID)
		default:
			t.Errorf("client %s did not receive the event", client.ID())
		}
	}
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := eventhub.NewHub(nil, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := newSlowMockClient("conn_slow")
	healthy := newMockClient("conn_ok")
	hub.RegisterCh <- slow
	hub.RegisterCh <- healthy
	time.Sleep(100 * time.Millisecond)

	event := models.ComplaintEvent{Type: models.EventComplaintUpdated, Complaint: models.Complaint{ID: 7}}
	hub.Publish(ctx, event)
	time.Sleep(100 * time.Millisecond)

	assert.NotContains(t, hub.Clients, "conn_slow")
	assert.True(t, slow.Closed())

	assert.Contains(t, hub.Clients, "conn_ok")
	select {
	case got := <-healthy.RecvChannel:
		assert.Equal(t, int64(7), got.Complaint.ID)
	default:
		t.Error("healthy client did not receive the event")
	}
}

func TestHub_UnregisterIgnoresStaleClient(t *testing.T) {
	hub := eventhub.NewHub(nil, logging.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	current := newMockClient("conn_A")
	stale := newMockClient("conn_A")

	hub.RegisterCh <- current
	time.Sleep(100 * time.Millisecond)

	// A reconnect replaced the old client; its late unregister must not evict
	// the current one.
	hub.UnregisterCh <- stale
	time.Sleep(100 * time.Millisecond)

	assert.Contains(t, hub.Clients, "conn_A")
	assert.False(t, current.Closed())
}
