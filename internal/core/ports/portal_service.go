package ports

import (
	"context"

	"github.com/agriconnect/portal/internal/core/domain"
)

// PortalService is the view controller consumed by the HTTP handlers. It owns
// every session transition; handlers only render whatever state it leaves
// behind.
type PortalService interface {
	// Navigate switches the session to one of the direct navigation targets
	// (home, login, register, admin) and persists the session.
	Navigate(ctx context.Context, sess *domain.Session, view domain.View) error

	// SignIn authenticates against the backend, stores the account on the
	// session, and forces the dashboard view.
	SignIn(ctx context.Context, sess *domain.Session, email, password string) error

	// Join registers a new account and then always performs a separate login
	// with the same credentials before signalling success. Registration alone
	// never authenticates.
	Join(ctx context.Context, sess *domain.Session, in RegisterInput) error

	// SignOut clears the account, returns the session to home, and persists.
	SignOut(ctx context.Context, sess *domain.Session) error

	// Conversation loads the message list for userID, optionally narrowed to
	// a single peer.
	Conversation(ctx context.Context, userID, peerID string) ([]domain.Message, error)

	// Send creates one message and reloads the thread. An empty peer id or
	// empty content is a no-op: no backend call is made and an empty thread
	// is returned alongside sent=false.
	Send(ctx context.Context, senderID, peerID, content string) (msgs []domain.Message, sent bool, err error)

	// Accounts loads the full account list for the admin panel.
	Accounts(ctx context.Context) ([]domain.Account, error)

	// SetAccountActive toggles an account's active flag and, only when the
	// toggle succeeded, performs exactly one full reload of the account list.
	SetAccountActive(ctx context.Context, accountID string, active bool) ([]domain.Account, error)
}
