// Package storage persists the application's collections as JSON documents
// in a string-keyed key-value store. Two backends exist: Redis (default) and
// a Postgres table via GORM. The typed Store sits above either backend.
package storage

import "context"

// Persisted document keys.
const (
	KeyComplaints      = "complaints"
	KeyRegisteredUsers = "registeredUsers"
	KeyCurrentUser     = "currentUser"
)

// KV is a string-keyed, string-valued store. Get reports absence via the
// second return value rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}
