package ledger

import "time"

// Fine computes the accrued fine for a loan due on dueOn as of effective.
// Dates are compared at day granularity in UTC; an effective date on or
// before the due date yields zero, never a negative amount.
func Fine(dueOn, effective time.Time) int64 {
	return int64(overdueDays(dueOn, effective)) * FinePerDay
}

func overdueDays(dueOn, effective time.Time) int {
	due := dateOnly(dueOn)
	eff := dateOnly(effective)
	if !eff.After(due) {
		return 0
	}
	return int(eff.Sub(due) / (24 * time.Hour))
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
