package storage

import (
	"context"
	"encoding/json"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
)

// schemaVersion is the current on-disk envelope version. Version 0 payloads
// are the pre-envelope bare JSON values and are still readable.
const schemaVersion = 1

// envelope wraps every persisted document so malformed data can be told apart
// from old-but-valid data on load.
type envelope struct {
	Version int             `json:"version"`
	Records json.RawMessage `json:"records"`
}

// Store reads and writes the three persisted documents under their fixed
// keys. A corrupted payload is discarded (the key is deleted) and the
// operation proceeds as if no prior data existed; this is never fatal.
type Store struct {
	kv  KV
	log *logging.Logger
}

// NewStore wraps kv.
func NewStore(kv KV, log *logging.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// loadRaw fetches the records payload for key. It returns nil both when the
// key is absent and when the payload was corrupted and reset.
func (s *Store) loadRaw(ctx context.Context, key string) (json.RawMessage, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok || raw == "" {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Version == schemaVersion {
		return env.Records, nil
	}

	if json.Valid([]byte(raw)) {
		// Version-0 payload written before the envelope existed.
		s.log.Warn("reading legacy payload", "key", key)
		return json.RawMessage(raw), nil
	}

	s.log.Warn("discarding corrupted payload", "key", key)
	return nil, s.kv.Del(ctx, key)
}

func (s *Store) saveRaw(ctx context.Context, key string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope{Version: schemaVersion, Records: data})
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(payload))
}

// discard resets a key whose records failed to decode.
func (s *Store) discard(ctx context.Context, key string) error {
	s.log.Warn("discarding corrupted payload", "key", key)
	return s.kv.Del(ctx, key)
}

// LoadComplaints returns the full complaint collection. Ordering is exactly
// the stored order; the filter pipeline is the only place ordering is applied.
func (s *Store) LoadComplaints(ctx context.Context) ([]models.Complaint, error) {
	raw, err := s.loadRaw(ctx, KeyComplaints)
	if err != nil || raw == nil {
		return []models.Complaint{}, err
	}
	var complaints []models.Complaint
	if err := json.Unmarshal(raw, &complaints); err != nil {
		return []models.Complaint{}, s.discard(ctx, KeyComplaints)
	}
	return complaints, nil
}

// SaveComplaints replaces the whole collection.
func (s *Store) SaveComplaints(ctx context.Context, complaints []models.Complaint) error {
	return s.saveRaw(ctx, KeyComplaints, complaints)
}

// HasComplaints reports whether the complaints key exists at all, so sample
// seeding can tell "never initialized" apart from "emptied".
func (s *Store) HasComplaints(ctx context.Context) (bool, error) {
	_, ok, err := s.kv.Get(ctx, KeyComplaints)
	return ok, err
}

// LoadUsers returns the registered-users collection.
func (s *Store) LoadUsers(ctx context.Context) ([]models.User, error) {
	raw, err := s.loadRaw(ctx, KeyRegisteredUsers)
	if err != nil || raw == nil {
		return []models.User{}, err
	}
	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return []models.User{}, s.discard(ctx, KeyRegisteredUsers)
	}
	return users, nil
}

// SaveUsers replaces the registered-users collection.
func (s *Store) SaveUsers(ctx context.Context, users []models.User) error {
	return s.saveRaw(ctx, KeyRegisteredUsers, users)
}

// LoadCurrentUser returns the persisted session user, or nil when logged out.
func (s *Store) LoadCurrentUser(ctx context.Context) (*models.PublicUser, error) {
	raw, err := s.loadRaw(ctx, KeyCurrentUser)
	if err != nil || raw == nil {
		return nil, err
	}
	var user models.PublicUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, s.discard(ctx, KeyCurrentUser)
	}
	return &user, nil
}

// SaveCurrentUser persists the session user.
func (s *Store) SaveCurrentUser(ctx context.Context, user models.PublicUser) error {
	return s.saveRaw(ctx, KeyCurrentUser, user)
}

// ClearCurrentUser removes the persisted session user.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	return s.kv.Del(ctx, KeyCurrentUser)
}
