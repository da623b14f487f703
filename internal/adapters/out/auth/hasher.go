// Package auth hashes passwords and signs session tokens.
package auth

import (
	"errors"

	"discount/internal/core/ports"
	"discount/internal/pkg/errs"

	faster "github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"
)

var _ ports.PasswordHasher = BcryptHasher{}

// BcryptHasher hashes with bcrypt at the given cost; zero means bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", faster.Wrap(err, "hash password")
	}
	return string(hash), nil
}

func (BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return errs.ErrInvalidCredentials
	default:
		return faster.Wrap(err, "compare password")
	}
}
