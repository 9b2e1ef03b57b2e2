package dto

import (
	"github.com/shopspring/decimal"

	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/usecase"
)

// RegisterAccountRequest represents a request to register an account.
type RegisterAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Document string `json:"document"`
	Role     string `json:"role,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterAccountRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Document: r.Document,
		Role:     domain.Role(r.Role),
	}
}

// LoginRequest represents login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// CreateTransferRequest represents a request to send funds. The sender is
// the authenticated caller, never part of the body.
type CreateTransferRequest struct {
	ReceiverID string          `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input for the given sender.
func (r *CreateTransferRequest) ToUseCaseInput(senderID string) usecase.TransferInput {
	return usecase.TransferInput{
		SenderID:   senderID,
		ReceiverID: r.ReceiverID,
		Amount:     r.Amount,
	}
}
