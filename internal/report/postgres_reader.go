package report

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendledger/internal/ledger"
)

// PostgresReader runs the report projections as plain SQL over the
// ledger tables.
type PostgresReader struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresReader(db *pgxpool.Pool, timeout time.Duration) *PostgresReader {
	return &PostgresReader{db: db, timeout: timeout}
}

func (r *PostgresReader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresReader) OverdueLoans(ctx context.Context, asOf time.Time) ([]OverdueLoan, error) {
	const query = `
		SELECT l.id, l.book_id, b.title, l.member_id, m.name, l.due_on
		FROM loans l
		JOIN books b ON b.id = l.book_id
		JOIN members m ON m.id = l.member_id
		WHERE l.status <> 'RETURNED'
		  AND (l.due_on AT TIME ZONE 'UTC')::date < ($1 AT TIME ZONE 'UTC')::date
		ORDER BY l.due_on ASC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OverdueLoan
	for rows.Next() {
		var o OverdueLoan
		if err := rows.Scan(&o.LoanID, &o.BookID, &o.Title, &o.MemberID, &o.MemberName, &o.DueOn); err != nil {
			return nil, err
		}
		o.AccruedFine = ledger.Fine(o.DueOn, asOf)
		o.DaysOverdue = int(o.AccruedFine / ledger.FinePerDay)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresReader) TopBooks(ctx context.Context, limit int) ([]BookCount, error) {
	const query = `
		SELECT b.id, b.title, b.author, COUNT(l.id) AS loan_count
		FROM books b
		JOIN loans l ON l.book_id = b.id
		GROUP BY b.id, b.title, b.author
		ORDER BY loan_count DESC, b.id ASC
		LIMIT $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookCount
	for rows.Next() {
		var c BookCount
		if err := rows.Scan(&c.BookID, &c.Title, &c.Author, &c.LoanCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresReader) MemberHistory(ctx context.Context, memberID string, asOf time.Time) ([]MemberLoan, error) {
	const existsSQL = `SELECT 1 FROM members WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var one int
	if err := r.db.QueryRow(timeoutCtx, existsSQL, memberID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrMemberNotFound
		}
		return nil, err
	}

	const query = `
		SELECT l.id, l.book_id, b.title, l.issued_on, l.due_on, l.returned_on, l.status, l.fine_amount
		FROM loans l
		JOIN books b ON b.id = l.book_id
		WHERE l.member_id = $1
		ORDER BY l.id ASC
	`
	queryCtx, cancelQuery := r.withTimeout(ctx)
	defer cancelQuery()

	rows, err := r.db.Query(queryCtx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MemberLoan
	for rows.Next() {
		var (
			ml     MemberLoan
			status ledger.Status
		)
		if err := rows.Scan(&ml.LoanID, &ml.BookID, &ml.Title, &ml.IssuedOn, &ml.DueOn, &ml.ReturnedOn, &status, &ml.FineAmount); err != nil {
			return nil, err
		}
		derived := ledger.Loan{Status: status, DueOn: ml.DueOn}
		ml.Status = string(derived.StatusAt(asOf))
		out = append(out, ml)
	}
	return out, rows.Err()
}

func (r *PostgresReader) FineTotals(ctx context.Context) ([]MemberFineTotal, error) {
	const query = `
		SELECT m.id, m.name, COALESCE(SUM(l.fine_amount), 0) AS total_fines
		FROM members m
		JOIN loans l ON l.member_id = m.id AND l.status = 'RETURNED'
		GROUP BY m.id, m.name
		ORDER BY total_fines DESC, m.id ASC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MemberFineTotal
	for rows.Next() {
		var t MemberFineTotal
		if err := rows.Scan(&t.MemberID, &t.MemberName, &t.TotalFines); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
