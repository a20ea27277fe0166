package ports

import (
	"context"

	"github.com/agriconnect/portal/internal/core/domain"
)

// RegisterInput carries the registration form fields. Password travels
// write-only to the backend and is never echoed back.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Backend is the single choke point for all marketplace API calls. Every
// implementation must collapse failures to an error whose message is the
// backend-supplied detail string; callers never see HTTP status codes.
type Backend interface {
	// Register creates an account. Success carries no meaningful payload.
	Register(ctx context.Context, in RegisterInput) error

	// Login authenticates and returns the account.
	Login(ctx context.Context, email, password string) (*domain.Account, error)

	// Accounts returns every registered account (admin panel data).
	Accounts(ctx context.Context) ([]domain.Account, error)

	// SetAccountActive flips an account's active flag. Callers are expected
	// to re-fetch the list afterwards; there is no optimistic update.
	SetAccountActive(ctx context.Context, accountID string, active bool) error

	// SendMessage creates one message. Callers re-fetch the thread afterwards.
	SendMessage(ctx context.Context, senderID, receiverID, content string) error

	// Messages returns the messages involving userID. An empty peerID means
	// all conversations; a non-empty peerID narrows to that single peer.
	Messages(ctx context.Context, userID, peerID string) ([]domain.Message, error)

	// Ping checks backend reachability (readiness probe).
	Ping(ctx context.Context) error
}
