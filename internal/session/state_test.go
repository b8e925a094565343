package session_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/session"
	"complainthub/backend/internal/storage"
)

func newTestState(t *testing.T) (*session.State, *storage.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := storage.NewStore(storage.NewRedisKV(client), logging.Discard())
	return session.NewState(store), store
}

func TestState_SetUserPersists(t *testing.T) {
	state, store := newTestState(t)
	ctx := context.Background()

	user := models.PublicUser{ID: 1, Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, state.SetUser(ctx, &user))

	assert.True(t, state.LoggedIn())
	assert.True(t, state.Admin())

	// A fresh state over the same store sees the session after Rehydrate.
	restored := session.NewState(store)
	require.NoError(t, restored.Rehydrate(ctx))
	require.NotNil(t, restored.User())
	assert.Equal(t, user, *restored.User())
}

func TestState_ClearUser(t *testing.T) {
	state, store := newTestState(t)
	ctx := context.Background()

	user := models.PublicUser{ID: 2, Name: "Regular User", Email: "user@example.com", Role: models.RoleUser}
	require.NoError(t, state.SetUser(ctx, &user))
	require.NoError(t, state.ClearUser(ctx))

	assert.False(t, state.LoggedIn())
	assert.False(t, state.Admin())

	persisted, err := store.LoadCurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestState_RehydrateEmptyStore(t *testing.T) {
	state, _ := newTestState(t)
	require.NoError(t, state.Rehydrate(context.Background()))
	assert.Nil(t, state.User())
	assert.Empty(t, state.Complaints())
}

func TestState_ReloadPicksUpNewComplaints(t *testing.T) {
	state, store := newTestState(t)
	ctx := context.Background()

	require.NoError(t, state.Rehydrate(ctx))
	assert.Empty(t, state.Complaints())

	require.NoError(t, store.SaveComplaints(ctx, []models.Complaint{{ID: 1, Title: "Leak"}}))
	require.NoError(t, state.Reload(ctx))

	require.Len(t, state.Complaints(), 1)
	assert.Equal(t, "Leak", state.Complaints()[0].Title)
}

func TestState_FilteredView(t *testing.T) {
	state, _ := newTestState(t)

	assert.Nil(t, state.Filtered())

	view := []models.Complaint{{ID: 2, Title: "Noise"}}
	state.SetFiltered(view)
	assert.Equal(t, view, state.Filtered())
}
