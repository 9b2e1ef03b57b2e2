package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payzap/payzap/internal/domain"
)

func TestMaskDocument(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"cpf", "12345678910", "123.***.***-10"},
		{"cnpj", "12345678000190", "123.***.***-90"},
		{"too short to mask", "1234", "1234"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskDocument(tt.input); got != tt.want {
				t.Fatalf("MaskDocument(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"regular email", "joao@example.com", "joa***@example.com"},
		{"long local part", "fernanda@example.com", "fer***@example.com"},
		{"short local part", "ab@example.com", "ab@example.com"},
		{"no at sign", "not-an-email", "not-an-email"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskEmail(tt.input); got != tt.want {
				t.Fatalf("MaskEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAccountFromDomain(t *testing.T) {
	now := time.Now().UTC()
	account := &domain.Account{
		ID:        "acc-1",
		Name:      "Joao Silva",
		Email:     "joao@example.com",
		Document:  "12345678910",
		Balance:   decimal.RequireFromString("100.50"),
		Role:      domain.RoleStandard,
		CreatedAt: now,
	}

	resp := AccountFromDomain(account)

	if resp.ID != "acc-1" || resp.Balance != "100.5" || resp.Role != "standard" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Email != "joao@example.com" || resp.Document != "12345678910" {
		t.Fatalf("owner view must not mask personal data: %+v", resp)
	}
}

func TestMaskedAccountFromDomain(t *testing.T) {
	account := &domain.Account{
		ID:       "acc-1",
		Name:     "Joao Silva",
		Email:    "joao@example.com",
		Document: "12345678910",
		Balance:  decimal.NewFromInt(100),
	}

	resp := MaskedAccountFromDomain(account)

	if resp.Email != "joa***@example.com" {
		t.Fatalf("expected masked email, got %s", resp.Email)
	}
	if resp.Document != "123.***.***-10" {
		t.Fatalf("expected masked document, got %s", resp.Document)
	}
}

func TestAccountListFromDomain(t *testing.T) {
	accounts := []*domain.Account{
		{ID: "acc-1", Email: "joao@example.com", Document: "12345678910"},
		{ID: "acc-2", Email: "maria@example.com", Document: "98765432100"},
	}

	resp := AccountListFromDomain(accounts)

	if resp.Count != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected list response: %+v", resp)
	}

	resp = AccountListFromDomain(nil)
	if resp.Count != 0 || resp.Data == nil {
		t.Fatalf("expected empty non-nil data for empty input, got %+v", resp)
	}
}

func TestLedgerEntryFromDomain(t *testing.T) {
	now := time.Now().UTC()
	entry := &domain.LedgerEntry{
		ID:         "entry-1",
		SenderID:   "acc-1",
		ReceiverID: "acc-2",
		Amount:     decimal.RequireFromString("10.25"),
		CreatedAt:  now,
	}

	resp := LedgerEntryFromDomain(entry)

	if resp.ID != "entry-1" || resp.Amount != "10.25" || resp.SenderID != "acc-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
