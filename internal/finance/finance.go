// Package finance holds the pure money arithmetic: commission, ledger totals
// and contract value. Nothing here is cached; callers pass a fresh snapshot.
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
)

// CommissionRate is the platform's cut of every income payment.
var CommissionRate = decimal.New(1, -1)

const daysPerMonth = 30

// Commission is amount × CommissionRate rounded to the nearest whole unit.
func Commission(amount int64) int64 {
	return decimal.NewFromInt(amount).Mul(CommissionRate).Round(0).IntPart()
}

func TotalIncome(txs []*ledger.Transaction) int64 {
	return sum(txs, ledger.TypeIncome, func(t *ledger.Transaction) int64 { return t.Amount })
}

func TotalPayouts(txs []*ledger.Transaction) int64 {
	return sum(txs, ledger.TypePayout, func(t *ledger.Transaction) int64 { return t.Amount })
}

func TotalCommission(txs []*ledger.Transaction) int64 {
	return sum(txs, ledger.TypeIncome, func(t *ledger.Transaction) int64 { return t.Commission })
}

// PlatformBalance is completed income minus completed payouts.
func PlatformBalance(txs []*ledger.Transaction) int64 {
	return TotalIncome(txs) - TotalPayouts(txs)
}

func sum(txs []*ledger.Transaction, kind ledger.Type, field func(*ledger.Transaction) int64) int64 {
	var total int64

	for _, t := range txs {
		if t.Type == kind && t.Status == ledger.StatusCompleted {
			total += field(t)
		}
	}

	return total
}

// DurationDays counts calendar days between two dates, ignoring time of day.
func DurationDays(start, end time.Time) int64 {
	return int64(DateOnly(end).Sub(DateOnly(start)).Hours()) / 24
}

// ContractMonths is round(days / 30), half rounded up. Ranges ending before
// they start are rejected.
func ContractMonths(start, end time.Time) (int64, error) {
	days := DurationDays(start, end)
	if days < 0 {
		return 0, errs.Invalid("endDate", "must not be before startDate")
	}

	return decimal.NewFromInt(days).Div(decimal.NewFromInt(daysPerMonth)).Round(0).IntPart(), nil
}

func ContractValue(monthlyRate int64, start, end time.Time) (int64, error) {
	months, err := ContractMonths(start, end)
	if err != nil {
		return 0, err
	}

	return monthlyRate * months, nil
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
