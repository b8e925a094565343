package eventhub_test

import (
	"complainthub/backend/internal/models"
)

type MockClient struct {
	id          string
	RecvChannel chan models.ComplaintEvent
	closed      chan struct{}
}

func newMockClient(id string) *MockClient {
	return &MockClient{
		id:          id,
		RecvChannel: make(chan models.ComplaintEvent, 10),
		closed:      make(chan struct{}),
	}
}

// newSlowMockClient has no receive buffer, so any dispatch to it blocks.
func newSlowMockClient(id string) *MockClient {
	return &MockClient{
		id:          id,
		RecvChannel: make(chan models.ComplaintEvent),
		closed:      make(chan struct{}),
	}
}

func (c *MockClient) ID() string {
	return c.id
}

func (c *MockClient) SendChannel() chan<- models.ComplaintEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
}

func (c *MockClient) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}
