package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agriconnect/portal/internal/api/metrics"
	"github.com/agriconnect/portal/internal/core/domain"
	"github.com/agriconnect/portal/internal/core/ports"
)

// PortalHandler renders the five portal views and translates form posts into
// PortalService calls. All session transitions happen inside the service;
// the handler only renders whatever state remains.
type PortalHandler struct {
	service ports.PortalService
	log     zerolog.Logger
}

func NewPortalHandler(service ports.PortalService, log zerolog.Logger) *PortalHandler {
	return &PortalHandler{service: service, log: log}
}

// pageData is the template payload shared by every view. Unused fields stay
// zero; Form carries re-submitted values so a failed post never resets the
// form.
type pageData struct {
	View     domain.View
	Account  *domain.Account
	Error    string
	Form     map[string]string
	PeerID   string
	Draft    string
	Messages []domain.Message
	Accounts []domain.Account
}

func newPageData(sess *domain.Session, view domain.View) pageData {
	return pageData{
		View:    view,
		Account: sess.Account,
		Form:    map[string]string{},
	}
}

// render writes one full page and counts it.
func (h *PortalHandler) render(c echo.Context, view domain.View, data pageData) error {
	metrics.PageRendersTotal.WithLabelValues(string(view)).Inc()
	return c.Render(http.StatusOK, string(view)+".html", data)
}

// Root handles GET / — it renders the session's current view. Entering the
// dashboard or admin views triggers their mount loads: the full message list
// for the signed-in user, or the full account list.
func (h *PortalHandler) Root(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	data := newPageData(sess, sess.View)
	switch sess.View {
	case domain.ViewDashboard:
		if sess.SignedIn() {
			msgs, err := h.service.Conversation(c.Request().Context(), sess.Account.ID, "")
			if err != nil {
				data.Error = err.Error()
			}
			data.Messages = msgs
		}
	case domain.ViewAdmin:
		accounts, err := h.service.Accounts(c.Request().Context())
		if err != nil {
			data.Error = err.Error()
		}
		data.Accounts = accounts
	}

	return h.render(c, sess.View, data)
}

// Navigate handles POST /nav/:view — direct navigation to home, login,
// register, or admin, regardless of authentication state.
func (h *PortalHandler) Navigate(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	view, err := domain.ParseView(c.Param("view"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown view")
	}

	if err := h.service.Navigate(c.Request().Context(), sess, view); err != nil {
		if errors.Is(err, domain.ErrViewNotNavigable) {
			return echo.NewHTTPError(http.StatusBadRequest, "view is not a navigation target")
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/")
}
