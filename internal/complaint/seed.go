package complaint

import (
	"context"
	"time"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

// SeedSampleData writes the demo complaint set on first run. It only fires
// when the complaints key has never been written; an emptied collection is
// left alone.
func SeedSampleData(ctx context.Context, store *storage.Store, log *logging.Logger) error {
	exists, err := store.HasComplaints(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	now := time.Now()
	day := 24 * time.Hour
	johnID, janeID := int64(2), int64(3)
	john, jane := "John Doe", "Jane Smith"
	cafeteriaResponse := "We have addressed this issue with the cafeteria staff and improved our quality control measures. Thank you for bringing this to our attention."
	wifiResponse := "We have upgraded our WiFi infrastructure and the issue should now be resolved. Please let us know if you continue to experience problems."

	samples := []models.Complaint{
		{
			ID:          1,
			Title:       "Broken elevator in Building A",
			Category:    "Maintenance",
			Description: "The elevator has been out of order for 3 days now. This is causing inconvenience for elderly residents and people with disabilities.",
			Status:      models.StatusPending,
			UserID:      &johnID,
			UserName:    &john,
			CreatedAt:   now.Add(-2 * day),
			UpdatedAt:   now.Add(-2 * day),
		},
		{
			ID:            2,
			Title:         "Poor food quality in cafeteria",
			Category:      "Cafeteria",
			Description:   "The food served today was cold and tasteless. The vegetables were overcooked and the meat was dry.",
			Status:        models.StatusResolved,
			IsAnonymous:   true,
			AdminResponse: &cafeteriaResponse,
			CreatedAt:     now.Add(-5 * day),
			UpdatedAt:     now.Add(-1 * day),
		},
		{
			ID:          3,
			Title:       "Security concerns in parking lot",
			Category:    "Security",
			Description: "Inadequate lighting in the parking area makes it unsafe during evening hours. Several residents have reported feeling unsafe.",
			Status:      models.StatusPending,
			UserID:      &janeID,
			UserName:    &jane,
			CreatedAt:   now.Add(-1 * day),
			UpdatedAt:   now.Add(-1 * day),
		},
		{
			ID:            4,
			Title:         "WiFi connectivity issues",
			Category:      "IT Support",
			Description:   "Internet connection keeps dropping in the common areas. This affects people working from the lobby.",
			Status:        models.StatusResolved,
			UserID:        &johnID,
			UserName:      &john,
			AdminResponse: &wifiResponse,
			CreatedAt:     now.Add(-7 * day),
			UpdatedAt:     now.Add(-3 * day),
		},
		{
			ID:          5,
			Title:       "Cleanliness issues in restrooms",
			Category:    "Cleanliness",
			Description: "The restrooms on the 3rd floor are not being cleaned regularly. There is often no soap or paper towels.",
			Status:      models.StatusPending,
			IsAnonymous: true,
			CreatedAt:   now.Add(-3 * day),
			UpdatedAt:   now.Add(-3 * day),
		},
	}

	if err := store.SaveComplaints(ctx, samples); err != nil {
		return err
	}
	log.Info("seeded sample complaints", "count", len(samples))
	return nil
}
