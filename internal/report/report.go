// Package report holds the read-only projections consumed by reporting
// callers. Reports are plain queries over ledger state and add no
// invariants of their own.
package report

import (
	"context"
	"time"
)

// OverdueLoan is an open loan past its due date, with the fine it has
// accrued so far.
type OverdueLoan struct {
	LoanID      int64     `json:"loan_id"`
	BookID      string    `json:"book_id"`
	Title       string    `json:"title"`
	MemberID    string    `json:"member_id"`
	MemberName  string    `json:"member_name"`
	DueOn       time.Time `json:"due_on"`
	DaysOverdue int       `json:"days_overdue"`
	AccruedFine int64     `json:"accrued_fine"`
}

// BookCount ranks a book by how often it has been borrowed.
type BookCount struct {
	BookID    string `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	LoanCount int    `json:"loan_count"`
}

// MemberLoan is one row of a member's loan history.
type MemberLoan struct {
	LoanID     int64      `json:"loan_id"`
	BookID     string     `json:"book_id"`
	Title      string     `json:"title"`
	IssuedOn   time.Time  `json:"issued_on"`
	DueOn      time.Time  `json:"due_on"`
	ReturnedOn *time.Time `json:"returned_on,omitempty"`
	Status     string     `json:"status"`
	FineAmount int64      `json:"fine_amount"`
}

// MemberFineTotal sums the recorded fines of a member's returned loans.
type MemberFineTotal struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	TotalFines int64  `json:"total_fines"`
}

// Reader defines the contract for report queries.
type Reader interface {
	OverdueLoans(ctx context.Context, asOf time.Time) ([]OverdueLoan, error)
	TopBooks(ctx context.Context, limit int) ([]BookCount, error)
	MemberHistory(ctx context.Context, memberID string, asOf time.Time) ([]MemberLoan, error)
	FineTotals(ctx context.Context) ([]MemberFineTotal, error)
}
