package report

import (
	"context"
	"sort"
	"time"

	"lendledger/internal/ledger"
)

// MemoryReader computes report projections over an in-memory ledger
// store. Each projection works on a snapshot, so a report never observes
// a half-applied lending operation.
type MemoryReader struct {
	store *ledger.MemoryStore
}

func NewMemoryReader(store *ledger.MemoryStore) *MemoryReader {
	return &MemoryReader{store: store}
}

func (r *MemoryReader) OverdueLoans(_ context.Context, asOf time.Time) ([]OverdueLoan, error) {
	books := indexBooks(r.store.Books())
	members := indexMembers(r.store.Members())

	var out []OverdueLoan
	for _, l := range r.store.Loans() {
		if l.StatusAt(asOf) != ledger.StatusOverdue {
			continue
		}
		fine := ledger.Fine(l.DueOn, asOf)
		out = append(out, OverdueLoan{
			LoanID:      l.ID,
			BookID:      l.BookID,
			Title:       books[l.BookID].Title,
			MemberID:    l.MemberID,
			MemberName:  members[l.MemberID].Name,
			DueOn:       l.DueOn,
			DaysOverdue: int(fine / ledger.FinePerDay),
			AccruedFine: fine,
		})
	}
	return out, nil
}

func (r *MemoryReader) TopBooks(_ context.Context, limit int) ([]BookCount, error) {
	counts := make(map[string]int)
	for _, l := range r.store.Loans() {
		counts[l.BookID]++
	}

	var out []BookCount
	for _, b := range r.store.Books() {
		if counts[b.ID] == 0 {
			continue
		}
		out = append(out, BookCount{
			BookID:    b.ID,
			Title:     b.Title,
			Author:    b.Author,
			LoanCount: counts[b.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LoanCount != out[j].LoanCount {
			return out[i].LoanCount > out[j].LoanCount
		}
		return out[i].BookID < out[j].BookID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryReader) MemberHistory(ctx context.Context, memberID string, asOf time.Time) ([]MemberLoan, error) {
	if _, err := r.store.GetMember(ctx, memberID); err != nil {
		return nil, err
	}

	books := indexBooks(r.store.Books())

	var out []MemberLoan
	for _, l := range r.store.Loans() {
		if l.MemberID != memberID {
			continue
		}
		out = append(out, MemberLoan{
			LoanID:     l.ID,
			BookID:     l.BookID,
			Title:      books[l.BookID].Title,
			IssuedOn:   l.IssuedOn,
			DueOn:      l.DueOn,
			ReturnedOn: l.ReturnedOn,
			Status:     string(l.StatusAt(asOf)),
			FineAmount: l.FineAmount,
		})
	}
	return out, nil
}

func (r *MemoryReader) FineTotals(_ context.Context) ([]MemberFineTotal, error) {
	totals := make(map[string]int64)
	for _, l := range r.store.Loans() {
		if l.Status == ledger.StatusReturned {
			totals[l.MemberID] += l.FineAmount
		}
	}

	var out []MemberFineTotal
	for _, m := range r.store.Members() {
		if _, ok := totals[m.ID]; !ok {
			continue
		}
		out = append(out, MemberFineTotal{
			MemberID:   m.ID,
			MemberName: m.Name,
			TotalFines: totals[m.ID],
		})
	}
	return out, nil
}

func indexBooks(books []ledger.Book) map[string]ledger.Book {
	idx := make(map[string]ledger.Book, len(books))
	for _, b := range books {
		idx[b.ID] = b
	}
	return idx
}

func indexMembers(members []ledger.Member) map[string]ledger.Member {
	idx := make(map[string]ledger.Member, len(members))
	for _, m := range members {
		idx[m.ID] = m
	}
	return idx
}
