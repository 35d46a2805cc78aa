package payment

import (
	"time"

	monthdomain "chama-ledger-go/internal/domain/month"
	"github.com/shopspring/decimal"
)

const (
	// Days 1-5 past the due date cost 100 each; every day after that
	// costs 25 more, until the stop date freezes the count.
	initialFineDays  = 5
	initialDailyFine = 100
	extraDailyFine   = 25
)

// CalculateFine computes the late fine for a payment made on paidDate
// against a contribution month due on dueDate. Paying on or before the
// due date is free. Accrual is clamped at the stop date, the 5th of the
// month after the due date's month: paying any later than that yields
// the same fine as paying exactly on it.
func CalculateFine(paidDate, dueDate time.Time) decimal.Decimal {
	daysLate := daysBetween(dueDate, paidDate)
	if daysLate <= 0 {
		return decimal.Zero
	}

	stopDate := monthdomain.NextFifth(dueDate)
	if paidDate.After(stopDate) {
		daysLate = daysBetween(dueDate, stopDate)
	}

	if daysLate <= initialFineDays {
		return decimal.NewFromInt(int64(daysLate) * initialDailyFine)
	}
	return decimal.NewFromInt(initialFineDays*initialDailyFine + int64(daysLate-initialFineDays)*extraDailyFine)
}

// DetermineStatus reports On Time for payments on or before the due date,
// Late otherwise. Pending is never produced here; it only applies to a
// record that has no paid date yet.
func DetermineStatus(paidDate, dueDate time.Time) string {
	if daysBetween(dueDate, paidDate) <= 0 {
		return StatusOnTime
	}
	return StatusLate
}

// Derive is the single derivation entry point used by the write path:
// whenever a payment is saved with a paid date, fine and status come
// from here and overwrite whatever was stored before.
func Derive(paidDate, dueDate time.Time) (decimal.Decimal, string) {
	return CalculateFine(paidDate, dueDate), DetermineStatus(paidDate, dueDate)
}

func daysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (24 * time.Hour))
}
