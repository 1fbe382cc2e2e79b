package ledger

import (
	"errors"
	"time"
)

// Domain errors. Callers branch on these with errors.Is; anything else
// coming out of a Store is a storage fault.
var (
	ErrBookNotFound       = errors.New("book not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrLoanNotFound       = errors.New("loan not found")
	ErrNoCopiesAvailable  = errors.New("no copies available")
	ErrAlreadyReturned    = errors.New("loan already returned")
	ErrInvariantViolation = errors.New("copy count invariant violated")
)

const (
	// LoanPeriodDays is the fixed loan period: due date = issue date + 14 days.
	LoanPeriodDays = 14

	// FinePerDay is the fine accrued per overdue day, in currency units.
	FinePerDay int64 = 5
)

// Status of a loan. PENDING and RETURNED are the stored states; OVERDUE is
// derived from the due date at read time, see Loan.StatusAt.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusOverdue  Status = "OVERDUE"
	StatusReturned Status = "RETURNED"
)

// Book is one catalog title with a physical copy count.
// AvailableCopies is mutated only through Store.ReserveCopy/ReleaseCopy
// and always satisfies 0 <= AvailableCopies <= TotalCopies.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Member is read-only input to lending decisions; the category is carried
// for reporting and affects nothing in lending logic.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Loan records one member borrowing one copy of one book.
type Loan struct {
	ID         int64      `json:"id"`
	MemberID   string     `json:"member_id"`
	BookID     string     `json:"book_id"`
	IssuedOn   time.Time  `json:"issued_on"`
	DueOn      time.Time  `json:"due_on"`
	ReturnedOn *time.Time `json:"returned_on,omitempty"`
	FineAmount int64      `json:"fine_amount"`
	Status     Status     `json:"status"`
}

// Open reports whether the loan still holds a copy.
func (l Loan) Open() bool {
	return l.Status != StatusReturned
}

// StatusAt returns the loan status as observed at the given time,
// mapping an open loan past its due date to OVERDUE.
func (l Loan) StatusAt(now time.Time) Status {
	if l.Status == StatusReturned {
		return StatusReturned
	}
	if dateOnly(now).After(dateOnly(l.DueOn)) {
		return StatusOverdue
	}
	return StatusPending
}
