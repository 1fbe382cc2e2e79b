package ledger

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. It is the default back-end when no
// database is configured and the fixture for tests. A single RWMutex keeps
// every read a consistent snapshot: a caller can never observe a copy
// count and the loan set in a mutually inconsistent state.
type MemoryStore struct {
	mu         sync.RWMutex
	books      map[string]Book
	members    map[string]Member
	loans      map[int64]Loan
	nextLoanID int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:   make(map[string]Book),
		members: make(map[string]Member),
		loans:   make(map[int64]Loan),
	}
}

func (s *MemoryStore) ReserveCopy(_ context.Context, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[bookID]
	if !ok {
		return ErrBookNotFound
	}
	if b.AvailableCopies <= 0 {
		return ErrNoCopiesAvailable
	}
	b.AvailableCopies--
	if b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return ErrInvariantViolation
	}
	b.UpdatedAt = time.Now()
	s.books[bookID] = b
	return nil
}

func (s *MemoryStore) ReleaseCopy(_ context.Context, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[bookID]
	if !ok {
		return ErrBookNotFound
	}
	// Capped at the total count; a double release is absorbed here.
	if b.AvailableCopies >= b.TotalCopies {
		return nil
	}
	b.AvailableCopies++
	b.UpdatedAt = time.Now()
	s.books[bookID] = b
	return nil
}

func (s *MemoryStore) CreateLoan(_ context.Context, loan *Loan) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[loan.BookID]; !ok {
		return 0, ErrBookNotFound
	}
	if _, ok := s.members[loan.MemberID]; !ok {
		return 0, ErrMemberNotFound
	}

	s.nextLoanID++
	loan.ID = s.nextLoanID
	s.loans[loan.ID] = *loan
	return loan.ID, nil
}

func (s *MemoryStore) MarkReturned(_ context.Context, loanID int64, returnedOn time.Time, fine int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.loans[loanID]
	if !ok {
		return ErrLoanNotFound
	}
	if l.Status == StatusReturned {
		return ErrAlreadyReturned
	}
	if fine < 0 {
		return ErrInvariantViolation
	}

	ret := returnedOn
	l.ReturnedOn = &ret
	l.FineAmount = fine
	l.Status = StatusReturned
	s.loans[loanID] = l
	return nil
}

func (s *MemoryStore) GetLoan(_ context.Context, loanID int64) (Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.loans[loanID]
	if !ok {
		return Loan{}, ErrLoanNotFound
	}
	return l, nil
}

func (s *MemoryStore) GetBook(_ context.Context, bookID string) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.books[bookID]
	if !ok {
		return Book{}, ErrBookNotFound
	}
	return b, nil
}

func (s *MemoryStore) GetMember(_ context.Context, memberID string) (Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[memberID]
	if !ok {
		return Member{}, ErrMemberNotFound
	}
	return m, nil
}

func (s *MemoryStore) AddBook(_ context.Context, b Book) error {
	if b.TotalCopies < 0 || b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return ErrInvariantViolation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books[b.ID] = b
	return nil
}

func (s *MemoryStore) AddMember(_ context.Context, m Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m
	return nil
}

// Books returns a snapshot of all books, sorted by ID. Used by the
// in-memory report reader.
func (s *MemoryStore) Books() []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Loans returns a snapshot of all loans, sorted by ID.
func (s *MemoryStore) Loans() []Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Loan, 0, len(s.loans))
	for _, l := range s.loans {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Members returns a snapshot of all members, sorted by ID.
func (s *MemoryStore) Members() []Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
