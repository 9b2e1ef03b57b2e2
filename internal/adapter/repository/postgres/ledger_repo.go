package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/payzap/payzap/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository. The table is
// append-only: there is no update or delete path.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Append writes the record of a completed transfer.
func (r *LedgerRepository) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ledger_entries (id, sender_id, receiver_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID,
		entry.SenderID,
		entry.ReceiverID,
		decimalToNumeric(entry.Amount),
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByID retrieves a ledger entry by ID.
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, sender_id, receiver_id, amount, created_at
		FROM ledger_entries WHERE id = $1`,
		id,
	)

	entry, err := scanLedgerEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// ListByAccount lists entries where the account is the sender or the
// receiver, newest first.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, amount, created_at
		FROM ledger_entries
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanLedgerEntry(row rowScanner) (*domain.LedgerEntry, error) {
	var (
		entry     domain.LedgerEntry
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.SenderID,
		&entry.ReceiverID,
		&amount,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Amount = numericToDecimal(amount)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}
