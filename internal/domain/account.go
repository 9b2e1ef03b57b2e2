package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a registered user that holds a balance.
type Account struct {
	ID           string
	Name         string
	Email        string
	Document     string
	PasswordHash string
	Balance      decimal.Decimal
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanCover checks if the account balance covers amount.
func (a *Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Role represents an account's type.
type Role string

const (
	// RoleStandard accounts can both send and receive funds.
	RoleStandard Role = "standard"

	// RoleShopkeeper accounts can only receive funds, never send.
	RoleShopkeeper Role = "shopkeeper"
)

var validRoles = map[Role]bool{
	RoleStandard:   true,
	RoleShopkeeper: true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanSend checks if accounts with this role may send funds.
func (r Role) CanSend() bool {
	return r == RoleStandard
}
