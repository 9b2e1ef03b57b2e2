package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPassword = errors.New("password does not meet requirements")
	ErrInvalidDocument = errors.New("document must be a valid CPF or CNPJ")
)

// Validation constants
const (
	MinNameLength     = 3
	MaxNameLength     = 255
	MinPasswordLength = 6
	MaxPasswordLength = 255
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// CPF (11 digits) or CNPJ (14 digits), with or without punctuation.
	documentRegex = regexp.MustCompile(`^([0-9]{3}\.?[0-9]{3}\.?[0-9]{3}\-?[0-9]{2}|[0-9]{2}\.?[0-9]{3}\.?[0-9]{3}\/?[0-9]{4}\-?[0-9]{2})$`)
)

// ValidateName validates an account holder name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinNameLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrInvalidName, MinNameLength)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password length bounds.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrInvalidPassword, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrInvalidPassword, MaxPasswordLength)
	}

	return nil
}

// ValidateDocument validates a CPF or CNPJ shape.
func ValidateDocument(document string) error {
	if !documentRegex.MatchString(strings.TrimSpace(document)) {
		return ErrInvalidDocument
	}

	return nil
}

// NormalizeDocument strips punctuation so documents compare equal regardless
// of formatting.
func NormalizeDocument(document string) string {
	replacer := strings.NewReplacer(".", "", "-", "", "/", "")
	return replacer.Replace(strings.TrimSpace(document))
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 100
	const defaultPageSize = 20

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
