// Package view holds the three-screen switch of a page (landing, login, admin)
// and the demo credential gate in front of the admin screen.
package view

import (
	"errors"
	"sync"
)

// Screen is the surface currently shown.
type Screen int

const (
	Landing Screen = iota
	Login
	Admin
)

func (s Screen) String() string {
	switch s {
	case Landing:
		return "LANDING"
	case Login:
		return "LOGIN"
	case Admin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

// MsgInvalidCredentials is the inline message shown on a failed login.
const MsgInvalidCredentials = "Invalid username or password. Please try again."

var (
	// ErrInvalidCredentials keeps the selector on Login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidTransition is returned for an event the current screen does not accept.
	ErrInvalidTransition = errors.New("transition not allowed from current screen")
)

// Selector switches between the screens of one page. The zero value is not usable; use NewSelector.
type Selector struct {
	mu     sync.Mutex
	screen Screen
	gate   *Gate
}

// NewSelector returns a selector on Landing guarded by gate.
func NewSelector(gate *Gate) *Selector {
	return &Selector{screen: Landing, gate: gate}
}

// Screen returns the current screen.
func (s *Selector) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Selector) move(from, to Screen) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != from {
		return ErrInvalidTransition
	}
	s.screen = to
	return nil
}

// EnterAdmin opens the login screen from the landing page.
func (s *Selector) EnterAdmin() error { return s.move(Landing, Login) }

// Cancel leaves the login screen.
func (s *Selector) Cancel() error { return s.move(Login, Landing) }

// Logout leaves the dashboard.
func (s *Selector) Logout() error { return s.move(Admin, Landing) }

// Preview shows the live landing page from the dashboard.
func (s *Selector) Preview() error { return s.move(Admin, Landing) }

// Login checks the credentials and opens the dashboard. On failure the
// selector stays on Login and ErrInvalidCredentials is returned; retries are unlimited.
func (s *Selector) Login(user, pass string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != Login {
		return ErrInvalidTransition
	}
	if s.gate == nil || !s.gate.Check(user, pass) {
		return ErrInvalidCredentials
	}
	s.screen = Admin
	return nil
}
