// Package eventhub fans complaint lifecycle events out to connected clients.
// A single run-loop hub owns all client state, with an optional Redis pub/sub
// bridge between instances.
package eventhub

import "complainthub/backend/internal/models"

// Client is one connected event consumer. The hub never writes to a client
// directly; everything goes through the send channel so a slow consumer can
// be detected and dropped.
type Client interface {
	// ID returns the unique identifier for this connection.
	ID() string
	// SendChannel returns the channel the hub delivers events on.
	SendChannel() chan<- models.ComplaintEvent
	// Run starts the client's read and write pumps.
	Run()
	// Close shuts the client down; safe to call more than once.
	Close()
}
