package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/portal/internal/core/domain"
	"github.com/agriconnect/portal/internal/core/ports"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role" validate:"required,oneof=farmer supplier admin"`
}

// Login handles POST /login. Success redirects to / (which now shows the
// dashboard); any failure re-renders the login form with the error inline
// and the email preserved.
func (h *PortalHandler) Login(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	data := newPageData(sess, domain.ViewLogin)
	data.Form["email"] = form.Email

	if err := c.Validate(&form); err != nil {
		data.Error = err.Error()
		return h.render(c, domain.ViewLogin, data)
	}

	if err := h.service.SignIn(c.Request().Context(), sess, form.Email, form.Password); err != nil {
		data.Error = err.Error()
		return h.render(c, domain.ViewLogin, data)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// Register handles POST /register. The service registers and then always
// logs in with the same credentials; a failure at either step lands back on
// the form with the submitted values preserved (password excepted).
func (h *PortalHandler) Register(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	data := newPageData(sess, domain.ViewRegister)
	data.Form["name"] = form.Name
	data.Form["email"] = form.Email
	data.Form["role"] = form.Role

	if err := c.Validate(&form); err != nil {
		data.Error = err.Error()
		return h.render(c, domain.ViewRegister, data)
	}

	in := ports.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	}
	if err := h.service.Join(c.Request().Context(), sess, in); err != nil {
		data.Error = err.Error()
		return h.render(c, domain.ViewRegister, data)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// SignOut handles POST /signout.
func (h *PortalHandler) SignOut(c echo.Context) error {
	sess, err := sessionFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.SignOut(c.Request().Context(), sess); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
