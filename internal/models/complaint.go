package models

import (
	"strings"
	"time"
)

// ComplaintStatus is the complaint lifecycle state. The lifecycle is one-way:
// pending -> resolved, with no reopen transition.
type ComplaintStatus string

const (
	StatusPending  ComplaintStatus = "pending"
	StatusResolved ComplaintStatus = "resolved"
)

// Valid reports whether s is a known lifecycle state.
func (s ComplaintStatus) Valid() bool {
	return s == StatusPending || s == StatusResolved
}

// Complaint is a user-submitted report. Invariant: when IsAnonymous is true,
// UserID and UserName are nil no matter who submitted it. A complaint is only
// ever mutated by the admin update (status, adminResponse, updatedAt) and is
// never deleted.
type Complaint struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Status        ComplaintStatus `json:"status"`
	IsAnonymous   bool            `json:"isAnonymous"`
	UserID        *int64          `json:"userId"`
	UserName      *string         `json:"userName"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	AdminResponse *string         `json:"adminResponse,omitempty"`
}

// HasResponse reports whether a non-empty admin response is on record.
func (c Complaint) HasResponse() bool {
	return c.AdminResponse != nil && strings.TrimSpace(*c.AdminResponse) != ""
}

// ComplaintInput carries the fields a submitter controls.
type ComplaintInput struct {
	Title       string
	Category    string
	Description string
	IsAnonymous bool
	ImageURL    *string
}

// ComplaintPatch carries the fields the admin update may change. An empty
// AdminResponse retains whatever response is already on record.
type ComplaintPatch struct {
	Status        ComplaintStatus
	AdminResponse string
}
