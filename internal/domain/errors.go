package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrSenderNotFound   = errors.New("sender account not found")
	ErrReceiverNotFound = errors.New("receiver account not found")
	ErrAccountExists    = errors.New("account with this email or document already exists")

	// Transfer errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSameAccount       = errors.New("sender and receiver cannot be the same account")
	ErrRoleNotPermitted  = errors.New("shopkeepers cannot send funds")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrLedgerWriteFailed = errors.New("transfer applied but ledger entry could not be written")

	// Authorization errors
	ErrAuthorizationDenied   = errors.New("transfer not authorized")
	ErrAuthorizerUnavailable = errors.New("authorization service unavailable")

	// Ledger errors
	ErrLedgerEntryNotFound = errors.New("ledger entry not found")

	// Unexpected storage faults
	ErrInternal = errors.New("internal error")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)
