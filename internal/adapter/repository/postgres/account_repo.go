package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/payzap/payzap/internal/domain"
)

const pgErrUniqueViolation = "23505"

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, name, email, document, password_hash, balance, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		account.ID,
		account.Name,
		account.Email,
		account.Document,
		account.PasswordHash,
		decimalToNumeric(account.Balance),
		string(account.Role),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrAccountExists
		}

		return err
	}

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getBy(ctx, "id", id)
}

// GetByEmail retrieves an account by email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getBy(ctx, "email", email)
}

func (r *AccountRepository) getBy(ctx context.Context, column, value string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, name, email, document, password_hash, balance, role, created_at, updated_at
		FROM accounts WHERE %s = $1`, column),
		value,
	)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

// ExistsByEmailOrDocument checks for an existing account with the same email
// or document.
func (r *AccountRepository) ExistsByEmailOrDocument(ctx context.Context, email, document string) (bool, error) {
	var exists bool

	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1 OR document = $2)`,
		email, document,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, document, password_hash, balance, role, created_at, updated_at
		FROM accounts ORDER BY created_at, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// ApplyTransfer debits sender and credits receiver inside one database
// transaction. Both rows are locked in lexicographic ID order so two
// transfers targeting each other's accounts cannot deadlock, and the
// sufficiency check runs on the locked row. Serialization conflicts are
// retried with backoff.
func (r *AccountRepository) ApplyTransfer(ctx context.Context, senderID, receiverID string, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	var senderBalance, receiverBalance decimal.Decimal

	err := r.retrier.Retry(ctx, func() error {
		var err error
		senderBalance, receiverBalance, err = r.applyTransferOnce(ctx, senderID, receiverID, amount)
		return err
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return senderBalance, receiverBalance, nil
}

func (r *AccountRepository) applyTransferOnce(ctx context.Context, senderID, receiverID string, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	first, second := senderID, receiverID
	if second < first {
		first, second = second, first
	}

	balances := make(map[string]decimal.Decimal, 2)
	for _, id := range []string{first, second} {
		var balance pgtype.Numeric

		err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`, id).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return decimal.Zero, decimal.Zero, domain.ErrAccountNotFound
			}

			return decimal.Zero, decimal.Zero, err
		}

		balances[id] = numericToDecimal(balance)
	}

	if balances[senderID].LessThan(amount) {
		return decimal.Zero, decimal.Zero, domain.ErrInsufficientFunds
	}

	newSenderBalance := balances[senderID].Sub(amount)
	newReceiverBalance := balances[receiverID].Add(amount)
	now := time.Now().UTC()

	for _, update := range []struct {
		id      string
		balance decimal.Decimal
	}{
		{senderID, newSenderBalance},
		{receiverID, newReceiverBalance},
	} {
		_, err := tx.Exec(ctx,
			`UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`,
			update.id, decimalToNumeric(update.balance), timeToPgTimestamptz(now),
		)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return newSenderBalance, newReceiverBalance, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		account   domain.Account
		balance   pgtype.Numeric
		role      string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.Document,
		&account.PasswordHash,
		&balance,
		&role,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)
	account.Role = domain.Role(role)
	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
