package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/infrastructure/auth"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	account := &domain.Account{
		ID:    "acc-123",
		Email: "joao@example.com",
		Role:  domain.RoleStandard,
	}

	token, err := manager.Generate(account)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}

	if claims.AccountID != account.ID || claims.Email != account.Email || claims.Role != account.Role {
		t.Fatalf("expected claims to match account, got %+v", claims)
	}
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	account := &domain.Account{
		ID:    "expired",
		Email: "expired@example.com",
		Role:  domain.RoleShopkeeper,
	}

	expiredClaims := auth.Claims{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := manager.Verify(expiredToken); err != domain.ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	otherManager := auth.NewJWTManager("other-secret", time.Minute)
	if _, err := otherManager.Verify(expiredToken); err == nil || err == domain.ErrExpiredToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := manager.Verify("not-a-token"); err == nil {
		t.Fatalf("expected failure for malformed token")
	}
}
