package ledger

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFine(t *testing.T) {
	due := date(2026, 3, 10)

	tests := []struct {
		name      string
		effective time.Time
		want      int64
	}{
		{"returned early", date(2026, 3, 3), 0},
		{"returned on due date", due, 0},
		{"one day late", date(2026, 3, 11), 5},
		{"three days late", date(2026, 3, 13), 15},
		{"thirty days late", date(2026, 4, 9), 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fine(due, tt.effective); got != tt.want {
				t.Errorf("Fine(%v, %v) = %d, want %d", due, tt.effective, got, tt.want)
			}
		})
	}
}

func TestFine_DayGranularity(t *testing.T) {
	// Times within the same calendar day never count as an overdue day.
	due := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sameDayLater := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	if got := Fine(due, sameDayLater); got != 0 {
		t.Errorf("same-day return should be free, got fine %d", got)
	}

	nextMorning := time.Date(2026, 3, 11, 0, 30, 0, 0, time.UTC)
	if got := Fine(due, nextMorning); got != FinePerDay {
		t.Errorf("next-day return should cost one day, got %d", got)
	}
}

func TestFine_NeverNegative(t *testing.T) {
	due := date(2026, 3, 10)
	for daysEarly := 1; daysEarly <= 30; daysEarly++ {
		eff := due.AddDate(0, 0, -daysEarly)
		if got := Fine(due, eff); got != 0 {
			t.Fatalf("early return %d days before due yielded fine %d", daysEarly, got)
		}
	}
}
