// Package utils holds small helpers shared by the admin gate.
package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the configured admin password once at startup so the
// plain value is not kept in memory by the gate.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

// CheckPassword reports whether plain matches hashed. Used by the demo admin gate.
func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
