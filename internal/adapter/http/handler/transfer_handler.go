package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/payzap/payzap/internal/adapter/http/dto"
	"github.com/payzap/payzap/internal/adapter/http/middleware"
	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/usecase"
)

type transferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.LedgerEntry, error)
	GetLedgerEntry(ctx context.Context, id string) (*domain.LedgerEntry, error)
	ListLedgerEntriesByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.LedgerEntry, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC transferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC transferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create sends funds from the authenticated caller to the receiver.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput(claims.AccountID))
	if err != nil {
		transferErrors.WithLabelValues(transferErrorReason(err)).Inc()
		writeError(w, mapDomainError(err), "failed to create transfer", err.Error())

		return
	}

	transfersCreated.Inc()
	writeJSON(w, http.StatusCreated, dto.LedgerEntryFromDomain(entry))
}

// Get retrieves a ledger entry by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	entry, err := h.transferUC.GetLedgerEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerEntryFromDomain(entry))
}

// ListByAccount lists ledger entries touching an account.
func (h *TransferHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	entries, err := h.transferUC.ListLedgerEntriesByAccount(r.Context(), usecase.ListByAccountInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transfers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerEntriesFromDomain(entries))
}

func transferErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrSenderNotFound):
		return "sender_not_found"
	case errors.Is(err, domain.ErrReceiverNotFound):
		return "receiver_not_found"
	case errors.Is(err, domain.ErrRoleNotPermitted):
		return "role_not_permitted"
	case errors.Is(err, domain.ErrAuthorizationDenied):
		return "authorization_denied"
	case errors.Is(err, domain.ErrAuthorizerUnavailable):
		return "authorizer_unavailable"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrLedgerWriteFailed):
		return "ledger_write_failed"
	default:
		return "internal"
	}
}
