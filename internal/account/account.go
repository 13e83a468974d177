package account

import "time"

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// HelperAccount aggregates what the platform owes a helper. Only the payout
// operation mutates it.
type HelperAccount struct {
	ID              int
	HelperID        int
	Name            string
	TotalEarnings   int64
	TotalCommission int64
	PendingPayout   int64
	LastPayout      time.Time
	BankAccount     string
	Status          Status
}

func (a HelperAccount) CurrentStatus() Status { return a.Status }
