package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/usecase"
)

// MockAccountRepository is an in-memory implementation of AccountRepository.
// Behaviors can be overridden per call via the Func fields.
type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account

	CreateFunc                  func(ctx context.Context, account *domain.Account) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.Account, error)
	GetByEmailFunc              func(ctx context.Context, email string) (*domain.Account, error)
	ExistsByEmailOrDocumentFunc func(ctx context.Context, email, document string) (bool, error)
	ListFunc                    func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ApplyTransferFunc           func(ctx context.Context, senderID, receiverID string, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed adds an account directly to the in-memory store.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

// Balance reads an account's current balance directly.
func (m *MockAccountRepository) Balance(id string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Balance
	}
	return decimal.Zero
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.Email == email {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ExistsByEmailOrDocument(ctx context.Context, email, document string) (bool, error) {
	if m.ExistsByEmailOrDocumentFunc != nil {
		return m.ExistsByEmailOrDocumentFunc(ctx, email, document)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.Email == email || acc.Document == document {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		copied := *acc
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}

// ApplyTransfer mirrors the production contract: the sufficiency check and
// both mutations happen under one lock.
func (m *MockAccountRepository) ApplyTransfer(ctx context.Context, senderID, receiverID string, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if m.ApplyTransferFunc != nil {
		return m.ApplyTransferFunc(ctx, senderID, receiverID, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	sender, ok := m.accounts[senderID]
	if !ok {
		return decimal.Zero, decimal.Zero, domain.ErrAccountNotFound
	}
	receiver, ok := m.accounts[receiverID]
	if !ok {
		return decimal.Zero, decimal.Zero, domain.ErrAccountNotFound
	}

	if sender.Balance.LessThan(amount) {
		return decimal.Zero, decimal.Zero, domain.ErrInsufficientFunds
	}

	sender.Balance = sender.Balance.Sub(amount)
	receiver.Balance = receiver.Balance.Add(amount)

	return sender.Balance, receiver.Balance, nil
}

// MockLedgerRepository is an in-memory implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.Mutex
	entries []*domain.LedgerEntry

	AppendFunc        func(ctx context.Context, entry *domain.LedgerEntry) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.LedgerEntry, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

// Entries returns everything appended so far.
func (m *MockLedgerRepository) Entries() []*domain.LedgerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.LedgerEntry(nil), m.entries...)
}

func (m *MockLedgerRepository) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrLedgerEntryNotFound
}

func (m *MockLedgerRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.SenderID == accountID || e.ReceiverID == accountID {
			matched = append(matched, e)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// MockAuthorizer is a configurable Authorizer. It approves everything by
// default.
type MockAuthorizer struct {
	CheckFunc func(ctx context.Context, req domain.TransferRequest) (usecase.Decision, error)

	mu    sync.Mutex
	calls []domain.TransferRequest
}

func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{}
}

// Calls returns every request passed to Check.
func (m *MockAuthorizer) Calls() []domain.TransferRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.TransferRequest(nil), m.calls...)
}

func (m *MockAuthorizer) Check(ctx context.Context, req domain.TransferRequest) (usecase.Decision, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, req)
	}
	return usecase.DecisionAllow, nil
}

// MockIDGenerator generates ULIDs unless overridden.
type MockIDGenerator struct {
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return ulid.Make().String()
}

// MockIdempotencyStore is an in-memory implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu     sync.Mutex
	values map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		values: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.values[key]; ok {
		return true, existing, nil
	}
	if response == nil {
		response = []byte("processing")
	}
	m.values[key] = response
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = response
	return nil
}
