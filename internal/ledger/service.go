package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// keyedMutex serializes mutations per book while letting operations on
// different books proceed independently. Entries are never evicted; the
// map is bounded by the catalog size.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Service orchestrates issue and return as all-or-nothing units on top of
// a Store. Mutations on the same book are serialized through a per-book
// lock so the reserve -> create-loan composite is observed atomically.
type Service struct {
	store     Store
	clock     Clock
	bookLocks *keyedMutex
}

// NewService creates a lending service backed by the given store.
func NewService(store Store) *Service {
	return NewServiceWithClock(store, realClock{})
}

// NewServiceWithClock is NewService with an explicit clock, for tests.
func NewServiceWithClock(store Store, clock Clock) *Service {
	return &Service{
		store:     store,
		clock:     clock,
		bookLocks: newKeyedMutex(),
	}
}

// IssueBook lends one copy of a book to a member. On success the returned
// loan is PENDING with a due date of the issue date plus the loan period.
// Fails with ErrMemberNotFound, ErrBookNotFound or ErrNoCopiesAvailable,
// in each case leaving state unchanged.
func (s *Service) IssueBook(ctx context.Context, memberID, bookID string) (Loan, error) {
	unlock := s.bookLocks.lock(bookID)
	defer unlock()

	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return Loan{}, err
	}

	now := s.clock.Now()
	loan := Loan{
		MemberID: memberID,
		BookID:   bookID,
		IssuedOn: now,
		DueOn:    now.AddDate(0, 0, LoanPeriodDays),
		Status:   StatusPending,
	}

	// A transactional store does reserve+create as one atomic unit.
	if txs, ok := s.store.(TxStore); ok {
		id, err := txs.IssueLoan(ctx, &loan)
		if err != nil {
			return Loan{}, err
		}
		loan.ID = id
		return loan, nil
	}

	if err := s.store.ReserveCopy(ctx, bookID); err != nil {
		return Loan{}, err
	}

	id, err := s.store.CreateLoan(ctx, &loan)
	if err != nil {
		// The copy is reserved but no loan record exists; put it back
		// before surfacing the error so the catalog is never left with a
		// phantom-reserved copy.
		if relErr := s.store.ReleaseCopy(ctx, bookID); relErr != nil {
			return Loan{}, fmt.Errorf("create loan: %w (release copy after failure: %v)", err, relErr)
		}
		return Loan{}, err
	}

	loan.ID = id
	return loan, nil
}

// ReturnBook closes a loan, computes its fine and releases the copy back
// to the catalog. Returns the fine amount. Fails with ErrLoanNotFound or
// ErrAlreadyReturned without touching state.
func (s *Service) ReturnBook(ctx context.Context, loanID int64) (int64, error) {
	// First lookup learns which book to lock; the loan is re-read under
	// the lock before any state changes.
	peek, err := s.store.GetLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}

	unlock := s.bookLocks.lock(peek.BookID)
	defer unlock()

	loan, err := s.store.GetLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}
	if !loan.Open() {
		return 0, ErrAlreadyReturned
	}

	returnedOn := s.clock.Now()
	fine := Fine(loan.DueOn, returnedOn)

	if txs, ok := s.store.(TxStore); ok {
		if err := txs.ReturnLoan(ctx, loanID, returnedOn, fine); err != nil {
			return 0, err
		}
		return fine, nil
	}

	if err := s.store.MarkReturned(ctx, loanID, returnedOn, fine); err != nil {
		return 0, err
	}

	// The loan is already closed, so a failed release would leave the
	// catalog under-counted. ReleaseCopy is capped at the total count,
	// which makes retrying safe.
	relErr := s.store.ReleaseCopy(ctx, loan.BookID)
	for attempt := 0; relErr != nil && attempt < 2; attempt++ {
		relErr = s.store.ReleaseCopy(ctx, loan.BookID)
	}
	if relErr != nil {
		return fine, fmt.Errorf("loan %d returned but copy release failed: %w", loanID, relErr)
	}

	return fine, nil
}

// OutstandingFine reports the fine a loan has accrued so far. For an open
// loan the fine is projected against the current date without mutating
// anything; for a returned loan the recorded amount is reported.
func (s *Service) OutstandingFine(ctx context.Context, loanID int64) (int64, error) {
	loan, err := s.store.GetLoan(ctx, loanID)
	if err != nil {
		return 0, err
	}
	if !loan.Open() {
		return loan.FineAmount, nil
	}
	return Fine(loan.DueOn, s.clock.Now()), nil
}

// GetLoan exposes a point lookup for callers that already hold a loan ID.
func (s *Service) GetLoan(ctx context.Context, loanID int64) (Loan, error) {
	return s.store.GetLoan(ctx, loanID)
}
