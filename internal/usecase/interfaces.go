package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payzap/payzap/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmailOrDocument(ctx context.Context, email, document string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)

	// ApplyTransfer debits senderID and credits receiverID by amount as a
	// single atomic unit. It succeeds only if the sender's balance covers
	// amount at the instant of application; on failure neither account is
	// mutated. Concurrent calls touching either account serialize against
	// each other. Returns the post-transfer balances.
	ApplyTransfer(ctx context.Context, senderID, receiverID string, amount decimal.Decimal) (senderBalance, receiverBalance decimal.Decimal, err error)
}

// LedgerRepository defines data access for ledger entries. Entries are
// append-only; nothing ever mutates or deletes one.
type LedgerRepository interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

// Decision is the authorization service's verdict for a proposed transfer.
type Decision int

const (
	// DecisionDeny means the service responded without explicit approval.
	DecisionDeny Decision = iota

	// DecisionAllow means the service explicitly approved the transfer.
	DecisionAllow

	// DecisionUnavailable means the service could not be reached in time.
	// Callers must treat it as a denial.
	DecisionUnavailable
)

// Authorizer consults the external authorization service for a proposed
// transfer. The returned error carries transport detail when the decision is
// DecisionUnavailable; it is never non-nil for Allow or Deny.
type Authorizer interface {
	Check(ctx context.Context, req domain.TransferRequest) (Decision, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
