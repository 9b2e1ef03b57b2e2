package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/payzap/payzap/internal/adapter/http/handler"
	apimiddleware "github.com/payzap/payzap/internal/adapter/http/middleware"
	"github.com/payzap/payzap/internal/domain"
	"github.com/payzap/payzap/internal/infrastructure/auth"
	"github.com/payzap/payzap/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_AuthenticatedRoutesRequireToken(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestNewRouter_AuthenticatedRouteAcceptsValidToken(t *testing.T) {
	manager := auth.NewJWTManager("router-test-secret", time.Minute)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.JWTManager = manager
	}))

	token, err := manager.Generate(&domain.Account{ID: "acc-1", Role: domain.RoleStandard})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with a valid token, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Joao Silva","email":"joao@example.com","password":"s3cret","document":"12345678910"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users",
		"GET /api/v1/users",
		"POST /api/v1/login",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/transfers",
		"POST /api/v1/transfers/",
		"GET /api/v1/transfers/{id}",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		AccountHandler:  handler.NewAccountHandler(&stubAccountService{}),
		AuthHandler:     handler.NewAuthHandler(&stubAuthService{}, &stubTokenIssuer{}),
		TransferHandler: handler.NewTransferHandler(&stubTransferService{}),
		HealthHandler:   &handler.HealthHandler{},
		JWTManager:      auth.NewJWTManager("router-test-secret", time.Minute),
		Logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAccountService struct{}

func (stubAccountService) Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc"}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

type stubAuthService struct{}

func (stubAuthService) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc"}, nil
}

type stubTokenIssuer struct{}

func (stubTokenIssuer) Generate(account *domain.Account) (string, error) {
	return "token", nil
}

type stubTransferService struct{}

func (stubTransferService) Transfer(ctx context.Context, input usecase.TransferInput) (*domain.LedgerEntry, error) {
	return &domain.LedgerEntry{ID: "entry"}, nil
}

func (stubTransferService) GetLedgerEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return &domain.LedgerEntry{ID: id}, nil
}

func (stubTransferService) ListLedgerEntriesByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.LedgerEntry, error) {
	return []*domain.LedgerEntry{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
