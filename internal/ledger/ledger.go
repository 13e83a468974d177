// Package ledger defines the append-only money movements of the platform.
package ledger

import "time"

type Type string

const (
	TypeIncome Type = "Income"
	TypePayout Type = "Payout"
)

type Status string

const (
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
	StatusFailed    Status = "Failed"
)

// Transaction is an immutable ledger entry. Income entries carry the platform
// commission; payouts carry none.
type Transaction struct {
	ID          int
	Type        Type
	HelperID    int
	From        string
	Amount      int64
	Commission  int64
	Date        time.Time
	Status      Status
	Description string
}

func (t Transaction) CurrentStatus() Status { return t.Status }
func (t Transaction) Kind() Type            { return t.Type }
