package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agriconnect/portal/internal/core/domain"
)

type memStore struct {
	sessions map[string]*domain.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*domain.Session)}
}

func (s *memStore) Find(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *memStore) Save(_ context.Context, sess *domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func runRequest(t *testing.T, m *SessionManager, cookie *http.Cookie) (*domain.Session, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *domain.Session
	h := m.Middleware()(func(c echo.Context) error {
		got, _ = c.Get(ContextKey).(*domain.Session)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return got, rec
}

func TestSessionManager_MintsWhenCookieMissing(t *testing.T) {
	store := newMemStore()
	m := NewSessionManager(store, "secret", time.Hour, zerolog.Nop())

	sess, rec := runRequest(t, m, nil)
	if sess == nil {
		t.Fatalf("expected a session in context")
	}
	if sess.View != domain.ViewHome || sess.SignedIn() {
		t.Fatalf("fresh session must be anonymous home view, got %+v", sess)
	}
	if _, ok := store.sessions[sess.ID]; !ok {
		t.Fatalf("fresh session must be persisted")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected session cookie to be set, got %+v", cookies)
	}
	if cookies[0].MaxAge != 0 {
		t.Fatalf("session cookie must be browser-session scoped")
	}
}

func TestSessionManager_RoundTripsExistingSession(t *testing.T) {
	store := newMemStore()
	m := NewSessionManager(store, "secret", time.Hour, zerolog.Nop())

	first, rec := runRequest(t, m, nil)
	cookie := rec.Result().Cookies()[0]

	// Mutate the stored session the way a login would.
	stored := store.sessions[first.ID]
	stored.Authenticate(&domain.Account{ID: "1", Name: "A", Role: domain.RoleFarmer})

	second, rec2 := runRequest(t, m, cookie)
	if second.ID != first.ID {
		t.Fatalf("expected the same session, got %s and %s", first.ID, second.ID)
	}
	if second.View != domain.ViewDashboard {
		t.Fatalf("expected persisted dashboard view, got %s", second.View)
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Fatalf("existing session must not re-set the cookie")
	}
}

func TestSessionManager_RejectsTamperedCookie(t *testing.T) {
	store := newMemStore()
	m := NewSessionManager(store, "secret", time.Hour, zerolog.Nop())

	_, rec := runRequest(t, m, nil)
	cookie := rec.Result().Cookies()[0]

	forged := NewSessionManager(store, "other-secret", time.Hour, zerolog.Nop())
	sess, rec2 := runRequest(t, forged, cookie)
	if sess == nil {
		t.Fatalf("expected a replacement session")
	}
	if len(rec2.Result().Cookies()) != 1 {
		t.Fatalf("tampered cookie must be replaced")
	}
}

func TestSessionManager_ReplacesUnknownSession(t *testing.T) {
	store := newMemStore()
	m := NewSessionManager(store, "secret", time.Hour, zerolog.Nop())

	_, rec := runRequest(t, m, nil)
	cookie := rec.Result().Cookies()[0]

	// Simulate store-side expiry.
	for id := range store.sessions {
		delete(store.sessions, id)
	}

	sess, _ := runRequest(t, m, cookie)
	if sess == nil || sess.View != domain.ViewHome {
		t.Fatalf("expected fresh home session, got %+v", sess)
	}
}
