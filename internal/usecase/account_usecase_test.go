package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/usecase"
	"github.com/payzap/payzap/internal/usecase/mocks"
)

func validRegisterInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Name:     "Joao Silva",
		Email:    "joao@example.com",
		Password: "s3cret-pass",
		Document: "123.456.789-10",
	}
}

func TestAccountUseCase_Register(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*usecase.RegisterInput)
		setupMocks func(*mocks.MockAccountRepository)
		errorType  error
	}{
		{
			name: "successful registration",
		},
		{
			name: "shopkeeper registration",
			mutate: func(in *usecase.RegisterInput) {
				in.Role = domain.RoleShopkeeper
				in.Document = "12.345.678/0001-90"
			},
		},
		{
			name: "reject short name",
			mutate: func(in *usecase.RegisterInput) {
				in.Name = "Jo"
			},
			errorType: domain.ErrInvalidName,
		},
		{
			name: "reject malformed email",
			mutate: func(in *usecase.RegisterInput) {
				in.Email = "not-an-email"
			},
			errorType: domain.ErrInvalidEmail,
		},
		{
			name: "reject short password",
			mutate: func(in *usecase.RegisterInput) {
				in.Password = "abc"
			},
			errorType: domain.ErrInvalidPassword,
		},
		{
			name: "reject malformed document",
			mutate: func(in *usecase.RegisterInput) {
				in.Document = "12345"
			},
			errorType: domain.ErrInvalidDocument,
		},
		{
			name: "reject duplicate email or document",
			setupMocks: func(repo *mocks.MockAccountRepository) {
				repo.ExistsByEmailOrDocumentFunc = func(ctx context.Context, email, document string) (bool, error) {
					return true, nil
				}
			},
			errorType: domain.ErrAccountExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAccountRepository()
			idGen := mocks.NewMockIDGenerator()

			if tt.setupMocks != nil {
				tt.setupMocks(repo)
			}

			input := validRegisterInput()
			if tt.mutate != nil {
				tt.mutate(&input)
			}

			uc := usecase.NewAccountUseCase(repo, idGen, decimal.NewFromInt(100))
			account, err := uc.Register(context.Background(), input)

			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.ID == "" {
				t.Error("expected generated account ID")
			}
			if account.PasswordHash != "" {
				t.Error("expected password hash to be cleared from the result")
			}
			if !account.Balance.Equal(decimal.NewFromInt(100)) {
				t.Errorf("expected initial balance 100, got %s", account.Balance)
			}
		})
	}
}

func TestAccountUseCase_RegisterNormalizesDocument(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewAccountUseCase(repo, idGen, decimal.Zero)

	account, err := uc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Document != "12345678910" {
		t.Errorf("expected normalized document 12345678910, got %s", account.Document)
	}
	if account.Role != domain.RoleStandard {
		t.Errorf("expected default role standard, got %s", account.Role)
	}
}

func TestAccountUseCase_RegisterStoresHashedPassword(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	idGen := mocks.NewMockIDGenerator()

	var stored *domain.Account
	repo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
		stored = account
		return nil
	}

	uc := usecase.NewAccountUseCase(repo, idGen, decimal.Zero)

	if _, err := uc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected Create to be called")
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "s3cret-pass" {
		t.Fatal("expected a hashed password to be stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestAccountUseCase_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repo := mocks.NewMockAccountRepository()
	repo.Seed(&domain.Account{
		ID:           "acc-1",
		Email:        "joao@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleStandard,
	})

	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator(), decimal.Zero)

	account, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "joao@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != "acc-1" {
		t.Errorf("expected account acc-1, got %s", account.ID)
	}
	if account.PasswordHash != "" {
		t.Error("expected password hash to be cleared from the result")
	}

	_, err = uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "joao@example.com",
		Password: "wrong-pass",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	_, err = uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.Seed(&domain.Account{
		ID:           "acc-1",
		PasswordHash: "hash",
		Role:         domain.RoleStandard,
	})

	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator(), decimal.Zero)

	account, err := uc.GetAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.PasswordHash != "" {
		t.Error("expected password hash to be cleared from the result")
	}

	if _, err := uc.GetAccount(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.Seed(&domain.Account{ID: "acc-1", PasswordHash: "hash", Role: domain.RoleStandard})
	repo.Seed(&domain.Account{ID: "acc-2", PasswordHash: "hash", Role: domain.RoleShopkeeper})

	uc := usecase.NewAccountUseCase(repo, mocks.NewMockIDGenerator(), decimal.Zero)

	accounts, err := uc.ListAccounts(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	for _, account := range accounts {
		if account.PasswordHash != "" {
			t.Errorf("account %s leaked its password hash", account.ID)
		}
	}
}
