package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/betawi/internal/audit"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
	"github.com/MrJamesThe3rd/betawi/internal/review"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

// Level is how an activity is highlighted on the console.
type Level string

const (
	LevelAlert   Level = "alert"
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
)

// Activity is one human-readable entry of the recent activity feed.
type Activity struct {
	At         time.Time
	Level      Level
	Title      string
	Message    string
	Collection string
	EntityID   int
}

// snapshot holds the audited fields the feed knows how to describe.
type snapshot struct {
	Name     string
	Sender   string
	From     string
	Status   string
	Type     string
	Amount   int64
	Verified bool
	Read     bool
}

// Activity describes the latest audited changes, newest first.
func (s *Service) Activity(ctx context.Context, limit int) ([]Activity, error) {
	if s.src.Changes == nil || limit <= 0 {
		return nil, nil
	}

	changes, err := s.src.Changes.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent changes: %w", err)
	}

	feed := make([]Activity, 0, len(changes))

	for _, c := range changes {
		a, err := describe(c)
		if err != nil {
			return nil, fmt.Errorf("describing %s %d: %w", c.Collection, c.EntityID, err)
		}

		feed = append(feed, a)
	}

	return feed, nil
}

func describe(c audit.Change) (Activity, error) {
	var before, after snapshot

	if err := decode(c.Before, &before); err != nil {
		return Activity{}, err
	}

	if err := decode(c.After, &after); err != nil {
		return Activity{}, err
	}

	a := Activity{At: c.At, Collection: c.Collection, EntityID: c.EntityID, Level: LevelInfo}
	statusChanged := c.Op == audit.OpUpdate && before.Status != after.Status
	verified := c.Op == audit.OpUpdate && !before.Verified && after.Verified

	switch {
	case c.Collection == store.BookingsName && c.Op == audit.OpCreate:
		a.Title, a.Message = "New Booking", fmt.Sprintf("Booking #%d was requested.", c.EntityID)
	case c.Collection == store.BookingsName && statusChanged:
		a.Level = LevelSuccess
		a.Title, a.Message = "Booking "+title(after.Status), fmt.Sprintf("Booking #%d is now %s.", c.EntityID, after.Status)
	case c.Collection == store.ContractsName && c.Op == audit.OpCreate:
		a.Title, a.Message = "New Contract", fmt.Sprintf("Contract #%d was drawn up.", c.EntityID)
	case c.Collection == store.ContractsName && statusChanged:
		a.Level = LevelSuccess
		a.Title, a.Message = "Contract "+title(after.Status), fmt.Sprintf("Contract #%d is now %s.", c.EntityID, after.Status)
	case c.Collection == store.HelpersName && c.Op == audit.OpCreate:
		a.Title, a.Message = "New Helper Registration", fmt.Sprintf("%s registered and is pending verification.", after.Name)
	case c.Collection == store.HouseholdsName && c.Op == audit.OpCreate:
		a.Title, a.Message = "New Household", fmt.Sprintf("%s registered and is pending verification.", after.Name)
	case (c.Collection == store.HelpersName || c.Collection == store.HouseholdsName) && verified:
		a.Level = LevelSuccess
		a.Title, a.Message = "Verified", fmt.Sprintf("%s is now verified.", after.Name)
	case c.Collection == store.ReviewsName && c.Op == audit.OpCreate:
		a.Title, a.Message = "New Review", fmt.Sprintf("Review #%d is awaiting moderation.", c.EntityID)
	case c.Collection == store.ReviewsName && statusChanged:
		a.Level = LevelSuccess
		if after.Status == string(review.StatusFlagged) {
			a.Level = LevelAlert
		}

		a.Title, a.Message = "Review "+title(after.Status), fmt.Sprintf("Review #%d is now %s.", c.EntityID, after.Status)
	case c.Collection == store.TransactionsName && c.Op == audit.OpCreate:
		a.Title, a.Message, a.Level = describePayment(after)
	case c.Collection == store.MessagesName && c.Op == audit.OpCreate:
		a.Title, a.Message = "New Message", fmt.Sprintf("%s sent a message.", after.Sender)
	default:
		a.Title = fmt.Sprintf("%s %s", entityName(c.Collection), pastTense(c.Op))
		a.Message = fmt.Sprintf("%s #%d was %s.", entityName(c.Collection), c.EntityID, strings.ToLower(pastTense(c.Op)))

		if c.Op == audit.OpDelete {
			a.Level = LevelAlert
		}
	}

	return a, nil
}

func describePayment(t snapshot) (string, string, Level) {
	switch {
	case t.Type == string(ledger.TypePayout):
		return "Payout Processed", fmt.Sprintf("%d ETB paid out to %s.", t.Amount, t.From), LevelSuccess
	case t.Status == string(ledger.StatusFailed):
		return "Payment Failed", fmt.Sprintf("Payment of %d ETB from %s failed.", t.Amount, t.From), LevelAlert
	default:
		return "Payment Received", fmt.Sprintf("%d ETB received from %s.", t.Amount, t.From), LevelInfo
	}
}

// entityName turns a collection key into a singular title, "households" into "Household".
func entityName(collection string) string {
	name := strings.TrimSuffix(collection, "s")
	if name == "" {
		return collection
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

func title(status string) string {
	return cases.Title(language.English).String(status)
}

func pastTense(op audit.Op) string {
	switch op {
	case audit.OpCreate:
		return "Created"
	case audit.OpDelete:
		return "Deleted"
	default:
		return "Updated"
	}
}

func decode(raw json.RawMessage, into *snapshot) error {
	if len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	return nil
}
