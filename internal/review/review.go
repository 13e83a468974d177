package review

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/betawi/internal/status"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
	StatusFlagged  Status = "flagged"
)

// Machine is the moderation cycle. Resolved is terminal and nothing returns to pending.
var Machine = status.NewMachine("review", map[Status][]Status{
	StatusPending:  {StatusResolved, StatusFlagged},
	StatusFlagged:  {StatusResolved},
	StatusResolved: {},
})

// Review is a household's rating of a helper.
type Review struct {
	ID          int
	HouseholdID int
	HelperID    int
	Rating      int
	Comment     string
	Date        time.Time
	Status      Status
}

func (r Review) CurrentStatus() Status { return r.Status }

// AverageRating is the mean rating rounded to one decimal place, 0 for no reviews.
func AverageRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	total := decimal.Zero
	for _, r := range reviews {
		total = total.Add(decimal.NewFromInt(int64(r.Rating)))
	}

	return total.Div(decimal.NewFromInt(int64(len(reviews)))).Round(1).InexactFloat64()
}
