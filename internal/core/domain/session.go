package domain

import (
	"errors"
	"time"
)

// View identifies which of the portal pages a session is currently showing.
type View string

const (
	ViewHome      View = "home"
	ViewLogin     View = "login"
	ViewRegister  View = "register"
	ViewDashboard View = "dashboard"
	ViewAdmin     View = "admin"
)

// navigable lists the views reachable through a direct navigation action.
// The dashboard is deliberately absent: it is entered only as the result of
// a successful authentication.
var navigable = map[View]struct{}{
	ViewHome:     {},
	ViewLogin:    {},
	ViewRegister: {},
	ViewAdmin:    {},
}

var ErrUnknownView = errors.New("unknown view")
var ErrViewNotNavigable = errors.New("view is not a navigation target")
var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")

// ParseView converts a raw string into a View.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewHome, ViewLogin, ViewRegister, ViewDashboard, ViewAdmin:
		return v, nil
	}
	return "", ErrUnknownView
}

// Navigable reports whether the view may be selected directly from the
// navigation bar, regardless of authentication state.
func (v View) Navigable() bool {
	_, ok := navigable[v]
	return ok
}

// Session is the per-visitor state the portal keeps between requests: the
// visible view and the signed-in account, if any. All transitions go through
// the methods below so they stay auditable.
type Session struct {
	ID        string    `json:"id"`
	View      View      `json:"view"`
	Account   *Account  `json:"account,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession returns a fresh anonymous session showing the home view.
func NewSession(id string, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		View:      ViewHome,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Navigate switches to one of the four directly reachable views.
func (s *Session) Navigate(v View) error {
	if !v.Navigable() {
		return ErrViewNotNavigable
	}
	s.View = v
	return nil
}

// Authenticate records a successful login and forces the dashboard. This is
// the only path into the dashboard view.
func (s *Session) Authenticate(account *Account) {
	s.Account = account
	s.View = ViewDashboard
}

// SignOut clears the signed-in account and returns to the home view.
func (s *Session) SignOut() {
	s.Account = nil
	s.View = ViewHome
}

// SignedIn reports whether the session carries an authenticated account.
func (s *Session) SignedIn() bool {
	return s.Account != nil
}

// Expired reports whether the session has outlived its TTL.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
