package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/payzap/payzap/internal/domain"
)

// TransferUseCase orchestrates a single transfer end-to-end. It is the sole
// entry point that applies balance mutations.
type TransferUseCase struct {
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	authorizer  Authorizer
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	authorizer Authorizer,
	idGen IDGenerator,
	logger zerolog.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		authorizer:  authorizer,
		idGen:       idGen,
		logger:      logger,
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	SenderID   string
	ReceiverID string
	Amount     decimal.Decimal
}

// Transfer moves Amount from the sender to the receiver. Business-rule
// checks run in a fixed order and short-circuit on the first failure; the
// balance mutation happens only after the external authorization service
// explicitly approved the transfer.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.LedgerEntry, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if input.SenderID == input.ReceiverID {
		return nil, domain.ErrSameAccount
	}

	sender, err := uc.accountRepo.GetByID(ctx, input.SenderID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrSenderNotFound
		}

		return nil, fmt.Errorf("resolve sender: %w", err)
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.ReceiverID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrReceiverNotFound
		}

		return nil, fmt.Errorf("resolve receiver: %w", err)
	}

	if !sender.Role.CanSend() {
		return nil, domain.ErrRoleNotPermitted
	}

	req := domain.TransferRequest{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Amount:     input.Amount,
	}

	// Fail closed: the mutation proceeds only on an explicit approval.
	decision, checkErr := uc.authorizer.Check(ctx, req)
	switch decision {
	case DecisionAllow:
	case DecisionUnavailable:
		uc.logger.Warn().
			Err(checkErr).
			Str("sender_id", input.SenderID).
			Str("receiver_id", input.ReceiverID).
			Msg("authorization service unavailable, transfer rejected")

		return nil, domain.ErrAuthorizerUnavailable
	default:
		return nil, domain.ErrAuthorizationDenied
	}

	senderBalance, receiverBalance, err := uc.accountRepo.ApplyTransfer(ctx, input.SenderID, input.ReceiverID, input.Amount)
	if err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		ID:         uc.idGen.Generate(),
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Amount:     input.Amount,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.ledgerRepo.Append(ctx, entry); err != nil {
		// The balances already moved. Never retry here: a retry would
		// re-debit the sender. Log everything needed for reconciliation.
		uc.logger.Error().
			Err(err).
			Str("sender_id", input.SenderID).
			Str("receiver_id", input.ReceiverID).
			Str("amount", input.Amount.String()).
			Str("sender_balance", senderBalance.String()).
			Str("receiver_balance", receiverBalance.String()).
			Msg("ledger append failed after balances were applied")

		return nil, domain.ErrLedgerWriteFailed
	}

	uc.logger.Info().
		Str("entry_id", entry.ID).
		Str("sender_id", input.SenderID).
		Str("receiver_id", input.ReceiverID).
		Str("amount", input.Amount.String()).
		Msg("transfer completed")

	return entry, nil
}

// GetLedgerEntry retrieves a ledger entry by ID.
func (uc *TransferUseCase) GetLedgerEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return uc.ledgerRepo.GetByID(ctx, id)
}

// ListByAccountInput represents input for listing an account's history.
type ListByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListLedgerEntriesByAccount lists ledger entries touching an account, as
// sender or receiver.
func (uc *TransferUseCase) ListLedgerEntriesByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.LedgerEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.ledgerRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
