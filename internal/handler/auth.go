package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/twitter-api/internal/middleware"
	"github.com/iliyamo/twitter-api/internal/model"
	"github.com/iliyamo/twitter-api/internal/service"
)

// AuthHandler serves signup, login and the current user.
type AuthHandler struct {
	base
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService, opts Options) *AuthHandler {
	return &AuthHandler{base: opts.base(), auth: auth}
}

// Signup registers an account from a JSON body and returns it with 201.
func (h *AuthHandler) Signup(c echo.Context) error {
	var in model.UserCreate
	if err := bindBody(c, &in); err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	u, err := h.auth.Signup(ctx, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// Login takes form fields username and password, as OAuth2 password flow
// clients send them, and returns a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	missing := map[string]string{}
	if username == "" {
		missing["username"] = "cannot be blank"
	}
	if password == "" {
		missing["password"] = "cannot be blank"
	}
	if len(missing) > 0 {
		return h.fail(c, &service.ValidationError{Fields: missing})
	}

	ctx, cancel := h.ctx(c)
	defer cancel()
	tok, err := h.auth.Login(ctx, username, password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, tok)
}

// Me returns the user the bearer token belongs to.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return h.fail(c, service.ErrCouldNotValidate)
	}
	return c.JSON(http.StatusOK, u)
}
