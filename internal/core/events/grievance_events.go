package events

import (
	"time"

	"github.com/google/uuid"
)

const GrievanceStatusChangedType = "grievance.status_changed"

// Status kinds carried by GrievanceStatusChanged. Only terminal statuses
// produce an outbound notification.
const (
	StatusKindResolved = "resolved"
	StatusKindClosed   = "closed"
)

// GrievanceStatusChanged is published when an update sets a grievance status
// to a terminal value. Recipient is the submitter's email address.
type GrievanceStatusChanged struct {
	ID          string
	GrievanceID int64
	Title       string
	Description string
	Recipient   string
	Kind        string
	Timestamp   time.Time
}

func NewGrievanceStatusChanged(grievanceID int64, title, description, recipient, kind string) GrievanceStatusChanged {
	return GrievanceStatusChanged{
		ID:          uuid.NewString(),
		GrievanceID: grievanceID,
		Title:       title,
		Description: description,
		Recipient:   recipient,
		Kind:        kind,
		Timestamp:   time.Now(),
	}
}

func (e GrievanceStatusChanged) EventType() string     { return GrievanceStatusChangedType }
func (e GrievanceStatusChanged) EventID() string       { return e.ID }
func (e GrievanceStatusChanged) OccurredAt() time.Time { return e.Timestamp }
func (e GrievanceStatusChanged) Payload() interface{}  { return e }
