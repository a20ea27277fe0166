package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/portal/internal/core/domain"
)

type chatLoadForm struct {
	PeerID string `form:"peer_id"`
}

type chatSendForm struct {
	PeerID  string `form:"peer_id"`
	Content string `form:"content"`
}

// ChatLoad handles POST /chat/load — explicit reload of the message list,
// optionally narrowed to the free-text peer id.
func (h *PortalHandler) ChatLoad(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}
	if !sess.SignedIn() {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var form chatLoadForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	data := newPageData(sess, domain.ViewDashboard)
	data.PeerID = form.PeerID

	msgs, err := h.service.Conversation(c.Request().Context(), sess.Account.ID, form.PeerID)
	if err != nil {
		data.Error = err.Error()
	}
	data.Messages = msgs

	return h.render(c, domain.ViewDashboard, data)
}

// ChatSend handles POST /chat/send. A blank peer id or blank text is a
// silent no-op (no backend call). After a successful send the thread is
// reloaded and the composer cleared; on failure the draft stays put.
func (h *PortalHandler) ChatSend(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}
	if !sess.SignedIn() {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var form chatSendForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	data := newPageData(sess, domain.ViewDashboard)
	data.PeerID = form.PeerID

	msgs, sent, err := h.service.Send(c.Request().Context(), sess.Account.ID, form.PeerID, form.Content)
	if err != nil {
		data.Error = err.Error()
	}
	if !sent {
		data.Draft = form.Content
	}
	data.Messages = msgs

	return h.render(c, domain.ViewDashboard, data)
}
