package complaint

import (
	"math"

	"complainthub/backend/internal/models"
)

// Stats summarizes the collection for the home and admin dashboards.
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	Resolved       int `json:"resolved"`
	ResolutionRate int `json:"resolutionRate"`
}

// Summarize counts statuses and computes the resolution rate in percent.
func Summarize(complaints []models.Complaint) Stats {
	st := Stats{Total: len(complaints)}
	for _, c := range complaints {
		switch c.Status {
		case models.StatusResolved:
			st.Resolved++
		case models.StatusPending:
			st.Pending++
		}
	}
	if st.Total > 0 {
		st.ResolutionRate = int(math.Round(float64(st.Resolved) / float64(st.Total) * 100))
	}
	return st
}
