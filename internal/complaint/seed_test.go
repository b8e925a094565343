package complaint_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complainthub/backend/internal/complaint"
	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

func newSeedStore(t *testing.T) *storage.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return storage.NewStore(storage.NewRedisKV(client), logging.Discard())
}

func TestSeedSampleData_FirstRun(t *testing.T) {
	store := newSeedStore(t)
	ctx := context.Background()

	require.NoError(t, complaint.SeedSampleData(ctx, store, logging.Discard()))

	complaints, err := store.LoadComplaints(ctx)
	require.NoError(t, err)
	require.Len(t, complaints, 5)

	st := complaint.Summarize(complaints)
	assert.Equal(t, 3, st.Pending)
	assert.Equal(t, 2, st.Resolved)

	for _, c := range complaints {
		if c.IsAnonymous {
			assert.Nil(t, c.UserID, "anonymous sample %d carries no reporter", c.ID)
			assert.Nil(t, c.UserName)
		} else {
			assert.NotNil(t, c.UserID)
			assert.NotNil(t, c.UserName)
		}
		if c.Status == models.StatusResolved {
			assert.True(t, c.HasResponse(), "resolved sample %d has a response", c.ID)
		}
	}
}

func TestSeedSampleData_DoesNotOverwrite(t *testing.T) {
	store := newSeedStore(t)
	ctx := context.Background()

	// An explicitly emptied collection counts as initialized.
	require.NoError(t, store.SaveComplaints(ctx, []models.Complaint{}))
	require.NoError(t, complaint.SeedSampleData(ctx, store, logging.Discard()))

	complaints, err := store.LoadComplaints(ctx)
	require.NoError(t, err)
	assert.Empty(t, complaints)
}
