package dto

import (
	"strings"
	"time"

	"github.com/payzap/payzap/internal/domain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account as seen by its owner.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Document  string    `json:"document"`
	Balance   string    `json:"balance"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromDomain converts a domain account.
func AccountFromDomain(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Document:  account.Document,
		Balance:   account.Balance.String(),
		Role:      string(account.Role),
		CreatedAt: account.CreatedAt,
	}
}

// MaskedAccountResponse represents an account in public listings. Document
// and email are masked at render time; stored values stay untouched.
type MaskedAccountResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

// MaskedAccountFromDomain converts a domain account, masking personal data.
func MaskedAccountFromDomain(account *domain.Account) MaskedAccountResponse {
	return MaskedAccountResponse{
		ID:       account.ID,
		Name:     account.Name,
		Email:    MaskEmail(account.Email),
		Document: MaskDocument(account.Document),
	}
}

// AccountListResponse represents a public account listing.
type AccountListResponse struct {
	Count int                     `json:"count"`
	Data  []MaskedAccountResponse `json:"data"`
}

// AccountListFromDomain converts a slice of domain accounts.
func AccountListFromDomain(accounts []*domain.Account) AccountListResponse {
	data := make([]MaskedAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		data = append(data, MaskedAccountFromDomain(account))
	}

	return AccountListResponse{
		Count: len(data),
		Data:  data,
	}
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// LedgerEntryResponse represents a completed transfer.
type LedgerEntryResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Amount     string    `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// LedgerEntryFromDomain converts a domain ledger entry.
func LedgerEntryFromDomain(entry *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:         entry.ID,
		SenderID:   entry.SenderID,
		ReceiverID: entry.ReceiverID,
		Amount:     entry.Amount.String(),
		CreatedAt:  entry.CreatedAt,
	}
}

// LedgerEntriesFromDomain converts a slice of domain ledger entries.
func LedgerEntriesFromDomain(entries []*domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, LedgerEntryFromDomain(entry))
	}

	return out
}

// MaskDocument renders a document as its first three and last two digits,
// e.g. 123.***.***-10.
func MaskDocument(document string) string {
	if len(document) < 5 {
		return document
	}

	return document[:3] + ".***.***-" + document[len(document)-2:]
}

// MaskEmail keeps the first three characters and the domain,
// e.g. abc***@example.com.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 3 {
		return email
	}

	return email[:3] + "***" + email[at:]
}
