package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agriconnect/portal/internal/core/domain"
	"github.com/agriconnect/portal/internal/core/ports"
)

type portalService struct {
	backend  ports.Backend
	sessions ports.SessionStore
	log      zerolog.Logger
}

// NewPortalService returns the PortalService implementation backed by the
// marketplace API client and a session store.
func NewPortalService(backend ports.Backend, sessions ports.SessionStore, log zerolog.Logger) ports.PortalService {
	return &portalService{
		backend:  backend,
		sessions: sessions,
		log:      log,
	}
}

func (s *portalService) Navigate(ctx context.Context, sess *domain.Session, view domain.View) error {
	if err := sess.Navigate(view); err != nil {
		return err
	}
	return s.sessions.Save(ctx, sess)
}

func (s *portalService) SignIn(ctx context.Context, sess *domain.Session, email, password string) error {
	account, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}

	sess.Authenticate(account)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return err
	}

	s.log.Info().
		Str("account_id", account.ID).
		Str("role", account.Role).
		Msg("signed in")
	return nil
}

// Join registers and then logs in with the same credentials. The second call
// is unconditional: the register response is never trusted to authenticate,
// even when it contains the full account.
func (s *portalService) Join(ctx context.Context, sess *domain.Session, in ports.RegisterInput) error {
	if err := s.backend.Register(ctx, in); err != nil {
		return err
	}
	return s.SignIn(ctx, sess, in.Email, in.Password)
}

func (s *portalService) SignOut(ctx context.Context, sess *domain.Session) error {
	sess.SignOut()
	return s.sessions.Save(ctx, sess)
}

func (s *portalService) Conversation(ctx context.Context, userID, peerID string) ([]domain.Message, error) {
	return s.backend.Messages(ctx, userID, peerID)
}

func (s *portalService) Send(ctx context.Context, senderID, peerID, content string) ([]domain.Message, bool, error) {
	// Blank peer or blank text is a silent no-op: no backend call at all.
	if peerID == "" || content == "" {
		return nil, false, nil
	}

	if err := s.backend.SendMessage(ctx, senderID, peerID, content); err != nil {
		return nil, false, err
	}

	msgs, err := s.backend.Messages(ctx, senderID, peerID)
	if err != nil {
		return nil, true, err
	}
	return msgs, true, nil
}

func (s *portalService) Accounts(ctx context.Context) ([]domain.Account, error) {
	return s.backend.Accounts(ctx)
}

func (s *portalService) SetAccountActive(ctx context.Context, accountID string, active bool) ([]domain.Account, error) {
	if err := s.backend.SetAccountActive(ctx, accountID, active); err != nil {
		// A failed toggle does not refresh the list.
		return nil, err
	}
	return s.backend.Accounts(ctx)
}
