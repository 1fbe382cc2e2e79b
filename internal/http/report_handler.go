package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lendledger/internal/ledger"
	"lendledger/internal/report"
)

type ReportHandler struct {
	reader report.Reader
}

func NewReportHandler(reader report.Reader) *ReportHandler {
	return &ReportHandler{reader: reader}
}

// Overdue handles GET /reports/overdue.
func (h *ReportHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET", nil)
		return
	}

	asOf, ok := asOfParam(w, r)
	if !ok {
		return
	}

	overdue, err := h.reader.OverdueLoans(r.Context(), asOf)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "STORAGE_FAILURE", "Storage error", nil)
		return
	}
	JSONSuccess(w, overdue, map[string]interface{}{"as_of": asOf.Format("2006-01-02"), "count": len(overdue)})
}

// TopBooks handles GET /reports/top-books.
func (h *ReportHandler) TopBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	top, err := h.reader.TopBooks(r.Context(), limit)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "STORAGE_FAILURE", "Storage error", nil)
		return
	}
	JSONSuccess(w, top, map[string]interface{}{"limit": limit})
}

// FineTotals handles GET /reports/fines.
func (h *ReportHandler) FineTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET", nil)
		return
	}

	totals, err := h.reader.FineTotals(r.Context())
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "STORAGE_FAILURE", "Storage error", nil)
		return
	}
	JSONSuccess(w, totals, nil)
}

// MemberLoans handles GET /members/{id}/loans.
func (h *ReportHandler) MemberLoans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Use GET", nil)
		return
	}

	memberID, ok := parseMemberLoansPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	asOf, ok := asOfParam(w, r)
	if !ok {
		return
	}

	history, err := h.reader.MemberHistory(r.Context(), memberID, asOf)
	if err != nil {
		if errors.Is(err, ledger.ErrMemberNotFound) {
			JSONError(w, http.StatusNotFound, "MEMBER_NOT_FOUND", "Member does not exist", nil)
			return
		}
		JSONError(w, http.StatusInternalServerError, "STORAGE_FAILURE", "Storage error", nil)
		return
	}
	JSONSuccess(w, history, map[string]interface{}{"member_id": memberID, "count": len(history)})
}

// asOfParam reads the optional as_of=YYYY-MM-DD query parameter,
// defaulting to now. A false return means the error response was
// already written.
func asOfParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	v := r.URL.Query().Get("as_of")
	if v == "" {
		return time.Now(), true
	}
	parsed, err := time.Parse("2006-01-02", v)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "INVALID_DATE", "as_of must be YYYY-MM-DD", nil)
		return time.Time{}, false
	}
	return parsed, true
}

func parseMemberLoansPath(path string) (string, bool) {
	trimmed := strings.Trim(path, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 || parts[0] != "members" || parts[2] != "loans" {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
