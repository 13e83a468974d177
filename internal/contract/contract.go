package contract

import (
	"time"

	"github.com/MrJamesThe3rd/betawi/internal/finance"
	"github.com/MrJamesThe3rd/betawi/internal/status"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

// Machine advances contracts forward only. Contracts may also be created
// directly into any known status.
var Machine = status.NewMachine("contract", map[Status][]Status{
	StatusPending:   {StatusActive},
	StatusActive:    {StatusCompleted},
	StatusCompleted: {},
})

// Contract is an agreement between a helper and a household at a monthly rate.
// Its duration is always derived from the dates.
type Contract struct {
	ID              int
	HelperID        int
	HouseholdID     int
	ServiceType     string
	StartDate       time.Time
	EndDate         time.Time
	MonthlyRate     int64
	Status          Status
	Terms           string
	PaymentSchedule string
}

func (c Contract) CurrentStatus() Status { return c.Status }

// Months is the billed duration, round(days / 30).
func (c Contract) Months() (int64, error) {
	return finance.ContractMonths(c.StartDate, c.EndDate)
}

// Value is MonthlyRate × Months.
func (c Contract) Value() (int64, error) {
	return finance.ContractValue(c.MonthlyRate, c.StartDate, c.EndDate)
}
