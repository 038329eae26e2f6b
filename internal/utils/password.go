package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a bcrypt hash of a random string nobody knows. The
// unknown-identifier path of credential verification compares against it so
// both failure paths cost one hash comparison.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// HashPassword hashes a plaintext password using bcrypt with the given cost.
// A cost outside bcrypt's valid range falls back to the library default.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
// Internal comparison errors degrade to false, never an error.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DummyPasswordCheck burns one bcrypt comparison against a fixed hash so the
// unknown-user path takes as long as a real mismatch. Always returns false.
func DummyPasswordCheck(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password)) == nil && false
}
