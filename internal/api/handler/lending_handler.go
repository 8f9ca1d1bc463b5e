package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"lending-engine/internal/api/handler/dto"
	"lending-engine/internal/domain/lending"
	"lending-engine/internal/pkg/apperrors"
	"lending-engine/internal/query"
)

type LendingHandler struct {
	engine  lending.LendingService
	queries query.Service
	logger  *slog.Logger
}

func NewLendingHandler(engine lending.LendingService, queries query.Service, l *slog.Logger) *LendingHandler {
	return &LendingHandler{
		engine:  engine,
		queries: queries,
		logger:  l.With("component", "LendingHandler"),
	}
}

// IssueLoan lends one copy of a book to a member and responds with the new
// loan's ID.
func (h *LendingHandler) IssueLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	loanID, err := h.engine.Issue(r.Context(), req.BookID, req.MemberID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.IssueLoanResponse{LoanID: loanID})
}

// ReturnLoan closes an open loan. Returning an already-closed loan responds
// with 409.
func (h *LendingHandler) ReturnLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := idFromURL(r, "loanID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.engine.Return(r.Context(), loanID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Loan returned"})
}

func (h *LendingHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := idFromURL(r, "loanID")
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	loan, err := h.engine.GetLoan(r.Context(), loanID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanResponse(loan))
}

// ListLoans responds with loans joined with book title and member name.
func (h *LendingHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	views, err := h.queries.ListLoans(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewLoanViewListResponse(views))
}
