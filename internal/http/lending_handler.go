package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"lendledger/internal/auth"
	"lendledger/internal/httpx"
	"lendledger/internal/ledger"
)

// LendingService is the slice of the ledger service the handler needs.
type LendingService interface {
	IssueBook(ctx context.Context, memberID, bookID string) (ledger.Loan, error)
	ReturnBook(ctx context.Context, loanID int64) (int64, error)
	OutstandingFine(ctx context.Context, loanID int64) (int64, error)
	GetLoan(ctx context.Context, loanID int64) (ledger.Loan, error)
}

type LendingHandler struct {
	svc LendingService
}

func NewLendingHandler(svc LendingService) *LendingHandler {
	return &LendingHandler{svc: svc}
}

type issueRequest struct {
	MemberID string `json:"member_id" validate:"required,ident"`
	BookID   string `json:"book_id" validate:"required,ident"`
}

type fineResponse struct {
	LoanID     int64 `json:"loan_id"`
	FineAmount int64 `json:"fine_amount"`
}

// Issue handles POST /loans: lend one copy of a book to a member.
func (h *LendingHandler) Issue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use POST", nil)
		return
	}
	if !isStaff(r) {
		JSONError(w, http.StatusForbidden, "FORBIDDEN", "Issuing requires the STAFF role", nil)
		return
	}

	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_BODY", "Malformed JSON body", nil)
		return
	}
	if details := ValidateStruct(req); details != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request", details)
		return
	}

	loan, err := h.svc.IssueBook(r.Context(), req.MemberID, req.BookID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	JSONSuccessCreated(w, loan)
}

// LoanByID dispatches /loans/{id}, /loans/{id}/return and
// /loans/{id}/fine. Path params are parsed by hand, same as the rest of
// the net/http ServeMux routes.
func (h *LendingHandler) LoanByID(w http.ResponseWriter, r *http.Request) {
	loanID, action, ok := parseLoanPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch action {
	case "":
		if r.Method != http.MethodGet {
			JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET", nil)
			return
		}
		h.getLoan(w, r, loanID)
	case "return":
		if r.Method != http.MethodPost {
			JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use POST", nil)
			return
		}
		if !isStaff(r) {
			JSONError(w, http.StatusForbidden, "FORBIDDEN", "Returning requires the STAFF role", nil)
			return
		}
		h.returnLoan(w, r, loanID)
	case "fine":
		if r.Method != http.MethodGet {
			JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET", nil)
			return
		}
		h.outstandingFine(w, r, loanID)
	default:
		http.NotFound(w, r)
	}
}

func (h *LendingHandler) getLoan(w http.ResponseWriter, r *http.Request, loanID int64) {
	loan, err := h.svc.GetLoan(r.Context(), loanID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	JSONSuccess(w, loan, nil)
}

func (h *LendingHandler) returnLoan(w http.ResponseWriter, r *http.Request, loanID int64) {
	fine, err := h.svc.ReturnBook(r.Context(), loanID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	JSONSuccess(w, fineResponse{LoanID: loanID, FineAmount: fine}, nil)
}

func (h *LendingHandler) outstandingFine(w http.ResponseWriter, r *http.Request, loanID int64) {
	fine, err := h.svc.OutstandingFine(r.Context(), loanID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	JSONSuccess(w, fineResponse{LoanID: loanID, FineAmount: fine}, nil)
}

// parseLoanPath splits /loans/{id}[/{action}] into its parts.
func parseLoanPath(path string) (int64, string, bool) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "loans" {
		return 0, "", false
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}

	action := ""
	if len(parts) == 3 {
		action = parts[2]
	}
	return id, action, true
}

func isStaff(r *http.Request) bool {
	return httpx.RoleFrom(r) == auth.RoleStaff
}

// writeLedgerError maps domain errors onto the HTTP surface. Anything
// not recognized is a storage fault and stays generic.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrBookNotFound):
		JSONError(w, http.StatusNotFound, "BOOK_NOT_FOUND", "Book does not exist", nil)
	case errors.Is(err, ledger.ErrMemberNotFound):
		JSONError(w, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member does not exist", nil)
	case errors.Is(err, ledger.ErrLoanNotFound):
		JSONError(w, http.StatusNotFound, "LOAN_NOT_FOUND", "Loan does not exist", nil)
	case errors.Is(err, ledger.ErrNoCopiesAvailable):
		JSONError(w, http.StatusConflict, "NO_COPIES_AVAILABLE", "All copies of this book are on loan", nil)
	case errors.Is(err, ledger.ErrAlreadyReturned):
		JSONError(w, http.StatusConflict, "ALREADY_RETURNED", "This loan is already closed", nil)
	case errors.Is(err, ledger.ErrInvariantViolation):
		JSONError(w, http.StatusInternalServerError, "INVARIANT_VIOLATION", "Ledger consistency check failed", nil)
	default:
		JSONError(w, http.StatusInternalServerError, "STORAGE_FAILURE", "Storage error", nil)
	}
}
