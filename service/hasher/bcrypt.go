// Package hasher hashes and verifies player passwords.
package hasher

import (
	"github.com/lordvidex/errs/v2"
	"golang.org/x/crypto/bcrypt"
)

type Bcrypt struct{}

// Hash returns the bcrypt hash of the password at the default cost.
func (b *Bcrypt) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.WrapCode(err, errs.Internal, "error hashing password")
	}
	return string(hashed), nil
}

// Compare checks original against the stored hash.
func (b *Bcrypt) Compare(hashed, original string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(original)); err != nil {
		return errs.WrapCode(err, errs.Unauthenticated, "passwords do not match")
	}
	return nil
}
