package booking

import (
	"time"

	"github.com/MrJamesThe3rd/betawi/internal/status"
)

// Status is the booking lifecycle state. It only ever moves forward.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusCompleted Status = "Completed"
)

// Machine is the booking transition table. There is no cancel or reject edge.
var Machine = status.NewMachine("booking", map[Status][]Status{
	StatusPending:   {StatusApproved},
	StatusApproved:  {StatusCompleted},
	StatusCompleted: {},
})

// Booking links a household and a helper for a service over a date range.
type Booking struct {
	ID          int
	HouseholdID int
	HelperID    int
	ServiceType string
	StartDate   time.Time
	EndDate     time.Time
	Location    string
	Status      Status
}

func (b Booking) CurrentStatus() Status { return b.Status }
