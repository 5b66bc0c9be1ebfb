package auth

import (
	"errors"

	"github.com/frahmantamala/employee-management/internal"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = internal.DefaultBCryptCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Cost() int { return h.cost }

// Hash returns a salted bcrypt digest of plain.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", internal.NewValidationFieldError("password", "password is required", internal.ErrCodeInvalidPassword)
	}
	if len(plain) > maxPasswordBytes {
		return "", internal.NewValidationFieldError("password", "password must be at most 72 bytes", internal.ErrCodeInvalidPassword)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", internal.NewValidationFieldError("password", "password must be at most 72 bytes", internal.ErrCodeInvalidPassword)
		}
		return "", internal.NewInternalError("failed to hash password", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. A corrupt digest never matches.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
