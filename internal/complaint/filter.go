package complaint

import (
	"sort"
	"strings"

	"complainthub/backend/internal/models"
)

// SortOrder orders the filtered list by creation instant.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// Criteria controls the filter/sort pipeline. Empty Category/Status mean "no
// filter". MineOnly is only effective together with UserID (i.e. a session).
type Criteria struct {
	Search   string
	Category string
	Status   models.ComplaintStatus
	MineOnly bool
	UserID   int64
	// MatchReporter extends the search to the reporter name (admin variant).
	MatchReporter bool
	Sort          SortOrder
}

// Apply is a pure function mapping (complaints, criteria) to an ordered
// subset. Filters are a conjunction applied search -> category -> status ->
// mine; the sort runs last and is stable, so equal creation instants keep
// their input order.
func Apply(complaints []models.Complaint, c Criteria) []models.Complaint {
	term := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]models.Complaint, 0, len(complaints))
	for _, cm := range complaints {
		if term != "" && !matchesSearch(cm, term, c.MatchReporter) {
			continue
		}
		if c.Category != "" && cm.Category != c.Category {
			continue
		}
		if c.Status != "" && cm.Status != c.Status {
			continue
		}
		if c.MineOnly && (cm.UserID == nil || *cm.UserID != c.UserID) {
			continue
		}
		out = append(out, cm)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c.Sort == SortOldest {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out
}

func matchesSearch(c models.Complaint, term string, matchReporter bool) bool {
	if strings.Contains(strings.ToLower(c.Title), term) ||
		strings.Contains(strings.ToLower(c.Description), term) ||
		strings.Contains(strings.ToLower(c.Category), term) {
		return true
	}
	return matchReporter && c.UserName != nil && strings.Contains(strings.ToLower(*c.UserName), term)
}
