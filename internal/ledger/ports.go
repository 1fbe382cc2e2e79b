package ledger

import (
	"context"
	"time"
)

// Store defines the contract for ledger state storage. It is the sole
// authority allowed to mutate available copy counts and loan state.
//
// Each operation is individually atomic: two concurrent ReserveCopy calls
// for the last copy of a book must not both succeed, and ReleaseCopy never
// pushes a count past TotalCopies.
type Store interface {
	// ReserveCopy decrements the available copy count of a book.
	// Returns ErrBookNotFound or ErrNoCopiesAvailable.
	ReserveCopy(ctx context.Context, bookID string) error

	// ReleaseCopy increments the available copy count of a book, capped at
	// the total copy count so a double release cannot over-count.
	// Returns ErrBookNotFound.
	ReleaseCopy(ctx context.Context, bookID string) error

	// CreateLoan appends a new PENDING loan and returns its identifier.
	// Loan identifiers are assigned monotonically.
	// Returns ErrBookNotFound or ErrMemberNotFound on a dangling reference.
	CreateLoan(ctx context.Context, loan *Loan) (int64, error)

	// MarkReturned closes a loan, recording the return date and fine.
	// Returning an already-closed loan is ErrAlreadyReturned, not a no-op.
	MarkReturned(ctx context.Context, loanID int64, returnedOn time.Time, fine int64) error

	GetLoan(ctx context.Context, loanID int64) (Loan, error)
	GetBook(ctx context.Context, bookID string) (Book, error)
	GetMember(ctx context.Context, memberID string) (Member, error)

	// AddBook and AddMember load catalog records; both upsert on ID.
	// They exist for catalog load and seeding, not for lending flow.
	AddBook(ctx context.Context, b Book) error
	AddMember(ctx context.Context, m Member) error
}

// TxStore is implemented by back-ends that can run the multi-step
// lending mutations inside one storage transaction. When a Store also
// satisfies TxStore the service uses these composites and never needs
// the compensating two-step path.
type TxStore interface {
	// IssueLoan reserves a copy and appends the PENDING loan as a single
	// atomic unit; on any failure neither change persists.
	IssueLoan(ctx context.Context, loan *Loan) (int64, error)

	// ReturnLoan closes the loan and releases the copy as a single
	// atomic unit.
	ReturnLoan(ctx context.Context, loanID int64, returnedOn time.Time, fine int64) error
}
