package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/payzap/payzap/internal/adapter/http/dto"
	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/usecase"
)

type accountService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC accountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC accountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Register creates a new account.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register account", err.Error())
		return
	}

	accountsRegistered.Inc()
	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts with personal data masked.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListAccounts(r.Context(),
		parseIntQuery(r, "limit", 20),
		parseIntQuery(r, "offset", 0),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountListFromDomain(accounts))
}
