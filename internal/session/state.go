// Package session holds the single application-state slot: the current user
// plus the cached complaint list and its filtered view. There are no ambient
// globals; handlers receive the State explicitly.
package session

import (
	"context"
	"sync"

	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

// State is the process-wide session. The current user is rehydrated from
// storage at startup and persisted on every change. The cached lists are
// rebuilt from storage on each Reload; there is no incremental sync.
type State struct {
	mu       sync.RWMutex
	user     *models.PublicUser
	all      []models.Complaint
	filtered []models.Complaint

	store *storage.Store
}

// NewState binds an empty state to store.
func NewState(store *storage.Store) *State {
	return &State{store: store}
}

// Rehydrate loads the persisted session user and complaint list.
func (s *State) Rehydrate(ctx context.Context) error {
	user, err := s.store.LoadCurrentUser(ctx)
	if err != nil {
		return err
	}
	complaints, err := s.store.LoadComplaints(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.all = complaints
	s.filtered = nil
	s.mu.Unlock()
	return nil
}

// Reload rebuilds the cached complaint list from storage.
func (s *State) Reload(ctx context.Context) error {
	complaints, err := s.store.LoadComplaints(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.all = complaints
	s.mu.Unlock()
	return nil
}

// User returns the current session user, or nil when logged out.
func (s *State) User() *models.PublicUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser stores and persists the session user.
func (s *State) SetUser(ctx context.Context, user *models.PublicUser) error {
	if err := s.store.SaveCurrentUser(ctx, *user); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// ClearUser logs the session out and removes the persisted user.
func (s *State) ClearUser(ctx context.Context) error {
	if err := s.store.ClearCurrentUser(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return nil
}

// LoggedIn reports whether a user is logged in.
func (s *State) LoggedIn() bool { return s.User() != nil }

// Admin reports whether the current user holds the admin role.
func (s *State) Admin() bool {
	u := s.User()
	return u != nil && u.IsAdmin()
}

// Complaints returns the cached complaint list.
func (s *State) Complaints() []models.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all
}

// Filtered returns the last filtered view.
func (s *State) Filtered() []models.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered
}

// SetFiltered stores the derived filtered view.
func (s *State) SetFiltered(complaints []models.Complaint) {
	s.mu.Lock()
	s.filtered = complaints
	s.mu.Unlock()
}
