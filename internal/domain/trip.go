package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a saved travel plan owned by one user. The schedule is stored with
// the trip; grid edits rewrite it under a row lock.
type Trip struct {
	ID          uuid.UUID
	UserID      string
	Name        string
	Destination string
	Schedule    Schedule
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Role is a collaborator's access level on a shared trip.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Collaborator is a person with access to a trip, identified by email.
type Collaborator struct {
	TripID    uuid.UUID
	Email     string
	Role      Role
	CreatedAt time.Time
}

// SlotTarget addresses one slot in a schedule.
type SlotTarget struct {
	DayID  int
	Period Period
	Index  int
}
