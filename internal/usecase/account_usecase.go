package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/payzap/payzap/internal/domain"
)

// AccountUseCase handles account registration and credentials.
type AccountUseCase struct {
	accountRepo    AccountRepository
	idGen          IDGenerator
	initialBalance decimal.Decimal
}

// NewAccountUseCase creates a new AccountUseCase. New accounts start with
// initialBalance.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, initialBalance decimal.Decimal) *AccountUseCase {
	return &AccountUseCase{
		accountRepo:    accountRepo,
		idGen:          idGen,
		initialBalance: initialBalance,
	}
}

// RegisterInput represents input for registering an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Document string
	Role     domain.Role
}

// Register creates a new account with a hashed password.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if err := domain.ValidateDocument(input.Document); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleStandard
	}

	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInternal, input.Role)
	}

	document := domain.NormalizeDocument(input.Document)

	exists, err := uc.accountRepo.ExistsByEmailOrDocument(ctx, input.Email, document)
	if err != nil {
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	if exists {
		return nil, domain.ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uc.idGen.Generate(),
		Name:         input.Name,
		Email:        input.Email,
		Document:     document,
		PasswordHash: string(hash),
		Balance:      uc.initialBalance,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	account.PasswordHash = ""

	return account, nil
}

// AuthenticateInput represents login credentials.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies credentials. The error is the same whether the email
// is unknown or the password mismatches.
func (uc *AccountUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	account.PasswordHash = ""

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	account.PasswordHash = ""

	return account, nil
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	accounts, err := uc.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		account.PasswordHash = ""
	}

	return accounts, nil
}
