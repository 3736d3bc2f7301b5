// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
)

const (
	// bcryptCost trades hashing speed for brute-force resistance.
	bcryptCost = 12
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8
	// maxPasswordLength matches bcrypt's input limit; bytes past 72 would be
	// silently ignored by the hash.
	maxPasswordLength = 72
)

// passwordService hashes and checks passwords with bcrypt.
type passwordService struct{}

// NewPasswordService creates a new password service instance.
func NewPasswordService() adapter.PasswordService {
	return &passwordService{}
}

func (s *passwordService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength rejects passwords outside the accepted length
// range. Callers wrap the returned error into their own error codes.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < minPasswordLength:
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	case len(password) > maxPasswordLength:
		return fmt.Errorf("password must be at most %d characters long", maxPasswordLength)
	}
	return nil
}
