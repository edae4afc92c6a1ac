package view

import (
	"fmt"

	"github.com/aura-webinar/landing/pkg/utils"
)

// Demo credentials. These are a UI gate only.
const (
	DefaultUsername = "Admin"
	DefaultPassword = "12345"
)

// Gate is the demo-only admin credential check: a comparison against one fixed
// username and password. It is NOT a security boundary; production use needs
// real authentication.
type Gate struct {
	username string
	hash     string
}

// NewGate returns a gate for the given credentials (defaults when empty).
func NewGate(username, password string) (*Gate, error) {
	if username == "" {
		username = DefaultUsername
	}
	if password == "" {
		password = DefaultPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	return &Gate{username: username, hash: hash}, nil
}

// Check reports whether user and pass match the fixed credentials.
func (g *Gate) Check(user, pass string) bool {
	return user == g.username && utils.CheckPassword(pass, g.hash)
}
