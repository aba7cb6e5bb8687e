package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/httperr"
)

// TokenIssuer is satisfied by *auth.TokenService.
type TokenIssuer interface {
	Issue(subjectID uint, role auth.Role) (string, error)
}

// EmailChecker verifies that an address can receive mail. Optional.
type EmailChecker interface {
	Valid(ctx context.Context, email string) bool
}

var bcryptCost = bcrypt.DefaultCost

var errInvalidCredentials = httperr.Unauthorized("Invalid email or password")

func hashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func checkPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// NormalizePage clamps page and limit to sane values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func checkEmailDomain(ctx context.Context, checker EmailChecker, email string) error {
	if checker == nil || checker.Valid(ctx, email) {
		return nil
	}
	return httperr.Invalid("Email domain cannot receive mail")
}

func ownedBy(owner, caller uint, what string) error {
	if owner != caller {
		return httperr.Forbidden(fmt.Sprintf("%s belongs to another account", what))
	}
	return nil
}
