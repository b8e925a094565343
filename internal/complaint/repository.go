// Package complaint implements the complaint collection: CRUD against
// storage, the filter/sort pipeline, resolution validation and dashboard
// stats.
package complaint

import (
	"context"
	"errors"
	"strings"
	"time"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

var (
	// ErrNotFound marks an operation on an unknown complaint id. Call sites
	// decide between a silent no-op and a user-visible message.
	ErrNotFound = errors.New("complaint not found")
	// ErrResponseRequired rejects a resolution without an admin response
	// before any mutation happens.
	ErrResponseRequired = errors.New("admin response is required when marking as resolved")
)

// Repository owns the persisted complaint collection. Ids are derived from
// the creation instant (UnixMilli), matching the original scheme; collisions
// within the same millisecond are accepted, not deduplicated.
type Repository struct {
	store *storage.Store
	log   *logging.Logger

	now func() time.Time
}

// NewRepository binds the repository to store.
func NewRepository(store *storage.Store, log *logging.Logger) *Repository {
	return &Repository{store: store, log: log, now: time.Now}
}

// List returns the full collection in storage order. Ordering is applied only
// by the pipeline, never here.
func (r *Repository) List(ctx context.Context) ([]models.Complaint, error) {
	return r.store.LoadComplaints(ctx)
}

// FindByID returns the complaint with the given id, or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Complaint, error) {
	complaints, err := r.store.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}
	for i := range complaints {
		if complaints[i].ID == id {
			c := complaints[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// Create builds a new pending complaint from input, prepends it to the
// collection and persists. When the submission is anonymous or there is no
// session, the reporter fields stay nil regardless of submitter.
func (r *Repository) Create(ctx context.Context, input models.ComplaintInput, submitter *models.PublicUser) (*models.Complaint, error) {
	now := r.now()
	c := models.Complaint{
		ID:          now.UnixMilli(),
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
		Status:      models.StatusPending,
		IsAnonymous: input.IsAnonymous || submitter == nil,
		CreatedAt:   now,
		UpdatedAt:   now,
		ImageURL:    input.ImageURL,
	}
	if !c.IsAnonymous {
		id := submitter.ID
		name := submitter.Name
		c.UserID = &id
		c.UserName = &name
	}

	complaints, err := r.store.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}
	complaints = append([]models.Complaint{c}, complaints...)
	if err := r.store.SaveComplaints(ctx, complaints); err != nil {
		return nil, err
	}

	r.log.Info("complaint created", "id", c.ID, "category", c.Category, "anonymous", c.IsAnonymous)
	return &c, nil
}

// Update merges patch into the complaint with the given id and persists the
// whole collection. An empty patch response retains the prior response. The
// resolved-requires-response precondition belongs to the caller (see
// ValidateResolution), not here.
func (r *Repository) Update(ctx context.Context, id int64, patch models.ComplaintPatch) (*models.Complaint, error) {
	complaints, err := r.store.LoadComplaints(ctx)
	if err != nil {
		return nil, err
	}

	for i := range complaints {
		if complaints[i].ID != id {
			continue
		}
		complaints[i].Status = patch.Status
		if resp := strings.TrimSpace(patch.AdminResponse); resp != "" {
			complaints[i].AdminResponse = &resp
		}
		complaints[i].UpdatedAt = r.now()

		if err := r.store.SaveComplaints(ctx, complaints); err != nil {
			return nil, err
		}
		updated := complaints[i]
		r.log.Info("complaint updated", "id", id, "status", updated.Status)
		return &updated, nil
	}

	return nil, ErrNotFound
}

// ValidateResolution enforces the one update-boundary invariant: moving to
// resolved requires a non-empty response in the patch or already on record.
// It must run before any mutation.
func ValidateResolution(patch models.ComplaintPatch, existing *models.Complaint) error {
	if patch.Status != models.StatusResolved {
		return nil
	}
	if strings.TrimSpace(patch.AdminResponse) != "" {
		return nil
	}
	if existing != nil && existing.HasResponse() {
		// Keeping a previous response satisfies the invariant; documented
		// merge semantics from the original.
		return nil
	}
	return ErrResponseRequired
}
