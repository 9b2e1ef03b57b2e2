package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/infrastructure/postgres"
)

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB connects to the database named by DATABASE_URL. Tests that need
// it are skipped when the variable is unset.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	migrationsPath := "internal/infrastructure/postgres/migrations"
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		// Relative from tests/integration or tests/testutil.
		migrationsPath = "../../internal/infrastructure/postgres/migrations"
	}

	if err := postgres.RunMigrations(dbURL, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		t:    t,
	}
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE ledger_entries CASCADE;
		TRUNCATE TABLE accounts CASCADE;
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateTestAccount creates an account with the given role and balance.
func (db *TestDB) CreateTestAccount(ctx context.Context, name string, role domain.Role, balance decimal.Decimal) *domain.Account {
	db.t.Helper()

	now := time.Now().UTC()
	id := ulid.Make().String()

	hash, err := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)
	if err != nil {
		db.t.Fatalf("failed to hash test password: %v", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO accounts (id, name, email, document, password_hash, balance, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		id, name, id+"@example.com", id[len(id)-11:], string(hash), balance.String(), string(role), now,
	)
	if err != nil {
		db.t.Fatalf("failed to create test account: %v", err)
	}

	return &domain.Account{
		ID:        id,
		Name:      name,
		Email:     id + "@example.com",
		Document:  id[len(id)-11:],
		Balance:   balance,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AccountBalance reads an account's balance straight from the database.
func (db *TestDB) AccountBalance(ctx context.Context, id string) decimal.Decimal {
	db.t.Helper()

	var raw string
	if err := db.Pool.QueryRow(ctx, `SELECT balance::text FROM accounts WHERE id = $1`, id).Scan(&raw); err != nil {
		db.t.Fatalf("failed to read balance: %v", err)
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		db.t.Fatalf("failed to parse balance: %v", err)
	}

	return balance
}

// LedgerEntryCount counts ledger entries touching an account.
func (db *TestDB) LedgerEntryCount(ctx context.Context, accountID string) int {
	db.t.Helper()

	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ledger_entries WHERE sender_id = $1 OR receiver_id = $1`,
		accountID,
	).Scan(&count)
	if err != nil {
		db.t.Fatalf("failed to count ledger entries: %v", err)
	}

	return count
}
