package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgxpool.Pool and pgx.Tx the store needs, so
// each statement can run standalone or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is the durable Store implementation. Copy-count updates
// are single conditional UPDATEs, so the no-over-issue and no-over-count
// guarantees hold without an explicit row lock, and the issue/return
// composites run inside one transaction (see IssueLoan, ReturnLoan).
type PostgresStore struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresStore(db *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *PostgresStore) ReserveCopy(ctx context.Context, bookID string) error {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.reserveCopy(timeoutCtx, s.db, bookID)
}

func (s *PostgresStore) reserveCopy(ctx context.Context, q querier, bookID string) error {
	const reserveSQL = `
		UPDATE books
		SET available_copies = available_copies - 1, updated_at = NOW()
		WHERE id = $1 AND available_copies > 0
	`
	tag, err := q.Exec(ctx, reserveSQL, bookID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.bookMiss(ctx, q, bookID, ErrNoCopiesAvailable)
	}
	return nil
}

func (s *PostgresStore) ReleaseCopy(ctx context.Context, bookID string) error {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.releaseCopy(timeoutCtx, s.db, bookID)
}

func (s *PostgresStore) releaseCopy(ctx context.Context, q querier, bookID string) error {
	// Capped: the condition absorbs a double release instead of pushing the
	// count past total_copies.
	const releaseSQL = `
		UPDATE books
		SET available_copies = available_copies + 1, updated_at = NOW()
		WHERE id = $1 AND available_copies < total_copies
	`
	tag, err := q.Exec(ctx, releaseSQL, bookID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.bookMiss(ctx, q, bookID, nil)
	}
	return nil
}

// bookMiss disambiguates a zero-row conditional update: the book either
// does not exist, or exists and the condition failed (onExists).
func (s *PostgresStore) bookMiss(ctx context.Context, q querier, bookID string, onExists error) error {
	const existsSQL = `SELECT 1 FROM books WHERE id = $1`

	var one int
	err := q.QueryRow(ctx, existsSQL, bookID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrBookNotFound
	}
	if err != nil {
		return err
	}
	return onExists
}

func (s *PostgresStore) CreateLoan(ctx context.Context, loan *Loan) (int64, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.createLoan(timeoutCtx, s.db, loan)
}

func (s *PostgresStore) createLoan(ctx context.Context, q querier, loan *Loan) (int64, error) {
	const insertSQL = `
		INSERT INTO loans (member_id, book_id, issued_on, due_on, fine_amount, status)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING id
	`
	err := q.QueryRow(ctx, insertSQL,
		loan.MemberID, loan.BookID, loan.IssuedOn, loan.DueOn, StatusPending,
	).Scan(&loan.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			if strings.Contains(pgErr.ConstraintName, "member") {
				return 0, ErrMemberNotFound
			}
			return 0, ErrBookNotFound
		}
		return 0, err
	}
	return loan.ID, nil
}

// IssueLoan reserves a copy and inserts the loan in one transaction, so
// a failure at any point leaves neither change behind.
func (s *PostgresStore) IssueLoan(ctx context.Context, loan *Loan) (int64, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.Begin(timeoutCtx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(timeoutCtx)

	if err := s.reserveCopy(timeoutCtx, tx, loan.BookID); err != nil {
		return 0, err
	}
	id, err := s.createLoan(timeoutCtx, tx, loan)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(timeoutCtx); err != nil {
		return 0, err
	}
	return id, nil
}

// ReturnLoan closes the loan and releases its copy in one transaction.
func (s *PostgresStore) ReturnLoan(ctx context.Context, loanID int64, returnedOn time.Time, fine int64) error {
	if fine < 0 {
		return ErrInvariantViolation
	}

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(timeoutCtx)

	bookID, err := s.markReturned(timeoutCtx, tx, loanID, returnedOn, fine)
	if err != nil {
		return err
	}
	if err := s.releaseCopy(timeoutCtx, tx, bookID); err != nil {
		return err
	}
	return tx.Commit(timeoutCtx)
}

func (s *PostgresStore) MarkReturned(ctx context.Context, loanID int64, returnedOn time.Time, fine int64) error {
	if fine < 0 {
		return ErrInvariantViolation
	}

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.markReturned(timeoutCtx, s.db, loanID, returnedOn, fine)
	return err
}

// markReturned closes the loan and reports which book it held.
func (s *PostgresStore) markReturned(ctx context.Context, q querier, loanID int64, returnedOn time.Time, fine int64) (string, error) {
	const returnSQL = `
		UPDATE loans
		SET returned_on = $2, fine_amount = $3, status = $4
		WHERE id = $1 AND status <> $4
		RETURNING book_id
	`
	var bookID string
	err := q.QueryRow(ctx, returnSQL, loanID, returnedOn, fine, StatusReturned).Scan(&bookID)
	if err == nil {
		return bookID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	// No row changed: the loan is missing or already closed.
	if _, err := s.getLoan(ctx, q, loanID); err != nil {
		return "", err
	}
	return "", ErrAlreadyReturned
}

func (s *PostgresStore) GetLoan(ctx context.Context, loanID int64) (Loan, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.getLoan(timeoutCtx, s.db, loanID)
}

func (s *PostgresStore) getLoan(ctx context.Context, q querier, loanID int64) (Loan, error) {
	const query = `
		SELECT id, member_id, book_id, issued_on, due_on, returned_on, fine_amount, status
		FROM loans
		WHERE id = $1
	`
	var l Loan
	err := q.QueryRow(ctx, query, loanID).Scan(
		&l.ID, &l.MemberID, &l.BookID, &l.IssuedOn, &l.DueOn, &l.ReturnedOn, &l.FineAmount, &l.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrLoanNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (s *PostgresStore) GetBook(ctx context.Context, bookID string) (Book, error) {
	const query = `
		SELECT id, title, author, total_copies, available_copies, created_at, updated_at
		FROM books
		WHERE id = $1
	`
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var b Book
	err := s.db.QueryRow(timeoutCtx, query, bookID).Scan(
		&b.ID, &b.Title, &b.Author, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrBookNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (s *PostgresStore) GetMember(ctx context.Context, memberID string) (Member, error) {
	const query = `
		SELECT id, name, email, category, created_at
		FROM members
		WHERE id = $1
	`
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	var m Member
	err := s.db.QueryRow(timeoutCtx, query, memberID).Scan(
		&m.ID, &m.Name, &m.Email, &m.Category, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrMemberNotFound
		}
		return Member{}, err
	}
	return m, nil
}

func (s *PostgresStore) AddBook(ctx context.Context, b Book) error {
	if b.TotalCopies < 0 || b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return ErrInvariantViolation
	}

	const upsertSQL = `
		INSERT INTO books (id, title, author, total_copies, available_copies, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			total_copies = EXCLUDED.total_copies,
			available_copies = EXCLUDED.available_copies,
			updated_at = NOW()
	`
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.Exec(timeoutCtx, upsertSQL, b.ID, b.Title, b.Author, b.TotalCopies, b.AvailableCopies)
	return err
}

func (s *PostgresStore) AddMember(ctx context.Context, m Member) error {
	const upsertSQL = `
		INSERT INTO members (id, name, email, category, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			category = EXCLUDED.category
	`
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.Exec(timeoutCtx, upsertSQL, m.ID, m.Name, m.Email, m.Category)
	return err
}
