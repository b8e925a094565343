package models

// Event types carried on the complaint stream.
const (
	EventComplaintCreated  = "complaint_created"
	EventComplaintUpdated  = "complaint_updated"
	EventComplaintResolved = "complaint_resolved"
)

// ComplaintEvent is broadcast to connected clients whenever a complaint is
// created or triaged.
type ComplaintEvent struct {
	Type      string    `json:"type"`
	Complaint Complaint `json:"complaint"`
}
