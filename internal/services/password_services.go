package services

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 8

var (
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// CheckPasswordStrength applies the password policy in order and reports
// the first rule the password fails. Pure; no state.
func CheckPasswordStrength(password string) (bool, string) {
	if len(password) < MinPasswordLen {
		return false, "password must be at least 8 characters long"
	}
	if !upperRegex.MatchString(password) {
		return false, "password must contain an uppercase letter"
	}
	if !lowerRegex.MatchString(password) {
		return false, "password must contain a lowercase letter"
	}
	if !digitRegex.MatchString(password) {
		return false, "password must contain a number"
	}
	if !specialRegex.MatchString(password) {
		return false, "password must contain a special character (e.g., !@#$)"
	}
	return true, ""
}

// PasswordHasher wraps bcrypt. Each Hash call salts independently, so the
// same plaintext never produces the same digest twice.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. Malformed digests fail
// closed: the answer is false, never an error or panic.
func (h *PasswordHasher) Verify(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
