package domain

import "time"

// Status is the access-control state of a registered user.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Disposition is the access verdict for an inbound actor.
// Unregistered means no user row exists yet.
type Disposition int

const (
	DispositionUnregistered Disposition = iota
	DispositionPending
	DispositionApproved
	DispositionDenied
)

// User represents a bot user
type User struct {
	ID           int64
	Name         string
	Phone        string
	Status       Status
	RegisteredAt time.Time
}
