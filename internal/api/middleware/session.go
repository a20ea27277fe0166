package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agriconnect/portal/internal/api/metrics"
	"github.com/agriconnect/portal/internal/core/domain"
	"github.com/agriconnect/portal/internal/core/ports"
)

const (
	// CookieName is the session cookie. It carries a signed session id, not
	// the session itself, and has no Max-Age so it dies with the browser
	// session — view state does not survive a fresh visit.
	CookieName = "agriconnect_session"

	// ContextKey is where the resolved *domain.Session lives on the echo
	// context.
	ContextKey = "session"
)

// SessionManager resolves the visitor's session from the signed cookie,
// minting a fresh anonymous session whenever the cookie is missing, invalid,
// or points at an expired session.
type SessionManager struct {
	store  ports.SessionStore
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSessionManager(store ports.SessionStore, secret string, ttl time.Duration, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
	}
}

// Middleware attaches the session to every request.
func (m *SessionManager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := m.resolve(c)
			if err != nil {
				return err
			}
			c.Set(ContextKey, sess)
			return next(c)
		}
	}
}

func (m *SessionManager) resolve(c echo.Context) (*domain.Session, error) {
	if id, ok := m.sessionID(c); ok {
		sess, err := m.store.Find(c.Request().Context(), id)
		if err == nil {
			return sess, nil
		}
		m.log.Debug().Err(err).Str("session_id", id).Msg("stale session cookie")
	}
	return m.mint(c)
}

// sessionID extracts and verifies the session id from the cookie.
func (m *SessionManager) sessionID(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}

	id, _ := claims["sid"].(string)
	return id, id != ""
}

// mint creates, persists, and sets the cookie for a fresh home-view session.
func (m *SessionManager) mint(c echo.Context) (*domain.Session, error) {
	sess := domain.NewSession(uuid.NewString(), m.ttl)
	if err := m.store.Save(c.Request().Context(), sess); err != nil {
		return nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sid": sess.ID})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.SessionsCreatedTotal.Inc()
	return sess, nil
}
