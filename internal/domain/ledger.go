package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the immutable record of a completed transfer. It is written
// only after both the debit and the credit were durably applied.
type LedgerEntry struct {
	ID         string
	SenderID   string
	ReceiverID string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// TransferRequest is a proposed transfer. It is never persisted.
type TransferRequest struct {
	SenderID   string
	ReceiverID string
	Amount     decimal.Decimal
}

// Validate validates the request's shape.
func (r TransferRequest) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if r.SenderID == r.ReceiverID {
		return ErrSameAccount
	}

	return nil
}
