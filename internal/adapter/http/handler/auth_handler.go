package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/payzap/payzap/internal/adapter/http/dto"
	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/usecase"
)

type authService interface {
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.Account, error)
}

type tokenIssuer interface {
	Generate(account *domain.Account) (string, error)
}

// AuthHandler handles login requests.
type AuthHandler struct {
	accountUC authService
	tokens    tokenIssuer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountUC authService, tokens tokenIssuer) *AuthHandler {
	return &AuthHandler{
		accountUC: accountUC,
		tokens:    tokens,
	}
}

// Login verifies credentials and issues an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		writeError(w, mapDomainError(err), "login failed", err.Error())

		return
	}

	token, err := h.tokens.Generate(account)
	if err != nil {
		loginAttempts.WithLabelValues("failure").Inc()
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())

		return
	}

	loginAttempts.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, dto.LoginResponse{AccessToken: token})
}
