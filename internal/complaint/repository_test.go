package complaint

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

func newTestRepository(t *testing.T, now time.Time) *Repository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := storage.NewStore(storage.NewRedisKV(client), logging.Discard())

	repo := NewRepository(store, logging.Discard())
	repo.now = func() time.Time { return now }
	return repo
}

func TestRepository_CreatePrependsAndPersists(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestRepository(t, now)
	ctx := context.Background()

	first, err := repo.Create(ctx, models.ComplaintInput{
		Title:       "Leaky faucet",
		Category:    "Maintenance",
		Description: "kitchen sink drips",
	}, &models.PublicUser{ID: 2, Name: "Regular User"})
	require.NoError(t, err)

	assert.Equal(t, now.UnixMilli(), first.ID)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, now, first.CreatedAt)
	assert.Equal(t, now, first.UpdatedAt)
	require.NotNil(t, first.UserID)
	require.NotNil(t, first.UserName)
	assert.Equal(t, int64(2), *first.UserID)
	assert.Equal(t, "Regular User", *first.UserName)

	later := now.Add(time.Minute)
	repo.now = func() time.Time { return later }

	second, err := repo.Create(ctx, models.ComplaintInput{
		Title:       "Flickering light",
		Category:    "Maintenance",
		Description: "hallway light flickers",
	}, &models.PublicUser{ID: 2, Name: "Regular User"})
	require.NoError(t, err)

	complaints, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, complaints, 2)
	assert.Equal(t, second.ID, complaints[0].ID, "newest record is prepended")
	assert.Equal(t, first.ID, complaints[1].ID)
}

func TestRepository_CreateAnonymousDropsReporter(t *testing.T) {
	repo := newTestRepository(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// Anonymous flag wins even when a session exists.
	c, err := repo.Create(ctx, models.ComplaintInput{
		Title:       "Noise",
		Category:    "Other",
		Description: "loud construction at night",
		IsAnonymous: true,
	}, &models.PublicUser{ID: 2, Name: "Regular User"})
	require.NoError(t, err)
	assert.True(t, c.IsAnonymous)
	assert.Nil(t, c.UserID)
	assert.Nil(t, c.UserName)
}

func TestRepository_CreateWithoutSessionIsAnonymous(t *testing.T) {
	repo := newTestRepository(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	c, err := repo.Create(ctx, models.ComplaintInput{
		Title:       "Noise",
		Category:    "Other",
		Description: "loud construction at night",
	}, nil)
	require.NoError(t, err)
	assert.True(t, c.IsAnonymous)
	assert.Nil(t, c.UserID)
	assert.Nil(t, c.UserName)
}

func TestRepository_FindByID(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestRepository(t, now)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.ComplaintInput{
		Title:       "Leaky faucet",
		Category:    "Maintenance",
		Description: "drips",
	}, nil)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)

	_, err = repo.FindByID(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_UpdateResolvesWithResponse(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestRepository(t, now)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.ComplaintInput{
		Title:       "Leaky faucet",
		Category:    "Maintenance",
		Description: "drips",
	}, nil)
	require.NoError(t, err)

	later := now.Add(2 * time.Hour)
	repo.now = func() time.Time { return later }

	updated, err := repo.Update(ctx, created.ID, models.ComplaintPatch{
		Status:        models.StatusResolved,
		AdminResponse: "Plumber dispatched.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.Status)
	require.NotNil(t, updated.AdminResponse)
	assert.Equal(t, "Plumber dispatched.", *updated.AdminResponse)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, now, updated.CreatedAt, "creation instant is immutable")

	// The merge is persisted, not just returned.
	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, reloaded.Status)
}

func TestRepository_UpdateEmptyResponseKeepsPrior(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := newTestRepository(t, now)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.ComplaintInput{
		Title:       "Leaky faucet",
		Category:    "Maintenance",
		Description: "drips",
	}, nil)
	require.NoError(t, err)

	_, err = repo.Update(ctx, created.ID, models.ComplaintPatch{
		Status:        models.StatusResolved,
		AdminResponse: "Plumber dispatched.",
	})
	require.NoError(t, err)

	// Reopen with a blank response; the recorded response must survive.
	updated, err := repo.Update(ctx, created.ID, models.ComplaintPatch{
		Status:        models.StatusPending,
		AdminResponse: "   ",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	require.NotNil(t, updated.AdminResponse)
	assert.Equal(t, "Plumber dispatched.", *updated.AdminResponse)
}

func TestRepository_UpdateUnknownID(t *testing.T) {
	repo := newTestRepository(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))

	_, err := repo.Update(context.Background(), 404, models.ComplaintPatch{Status: models.StatusPending})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateResolution(t *testing.T) {
	withResponse := "Handled."
	existing := &models.Complaint{ID: 1, AdminResponse: &withResponse}
	bare := &models.Complaint{ID: 2}

	tests := []struct {
		name     string
		patch    models.ComplaintPatch
		existing *models.Complaint
		wantErr  error
	}{
		{"pending never needs a response", models.ComplaintPatch{Status: models.StatusPending}, bare, nil},
		{"resolved with patch response", models.ComplaintPatch{Status: models.StatusResolved, AdminResponse: "Done."}, bare, nil},
		{"resolved keeping prior response", models.ComplaintPatch{Status: models.StatusResolved}, existing, nil},
		{"resolved without any response", models.ComplaintPatch{Status: models.StatusResolved}, bare, ErrResponseRequired},
		{"whitespace response is empty", models.ComplaintPatch{Status: models.StatusResolved, AdminResponse: "  "}, bare, ErrResponseRequired},
		{"resolved with nil existing", models.ComplaintPatch{Status: models.StatusResolved}, nil, ErrResponseRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResolution(tt.patch, tt.existing)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
