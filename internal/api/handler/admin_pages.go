package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/portal/internal/core/domain"
)

type toggleForm struct {
	AccountID string `form:"account_id" validate:"required"`
	Active    bool   `form:"active"`
}

// AdminRefresh handles POST /admin/refresh — explicit reload of the full
// account list.
func (h *PortalHandler) AdminRefresh(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	data := newPageData(sess, domain.ViewAdmin)
	accounts, err := h.service.Accounts(c.Request().Context())
	if err != nil {
		data.Error = err.Error()
	}
	data.Accounts = accounts

	return h.render(c, domain.ViewAdmin, data)
}

// AdminToggle handles POST /admin/toggle. A successful toggle is followed by
// exactly one full list reload inside the service; a failed toggle renders
// the error without refreshing the list.
func (h *PortalHandler) AdminToggle(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var form toggleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	data := newPageData(sess, domain.ViewAdmin)
	if err := c.Validate(&form); err != nil {
		data.Error = err.Error()
		return h.render(c, domain.ViewAdmin, data)
	}

	accounts, err := h.service.SetAccountActive(c.Request().Context(), form.AccountID, form.Active)
	if err != nil {
		data.Error = err.Error()
	}
	data.Accounts = accounts

	return h.render(c, domain.ViewAdmin, data)
}
