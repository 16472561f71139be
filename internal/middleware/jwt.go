package middleware // package middleware contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/model"
	"github.com/iliyamo/twitter-api/internal/service"
)

// userKey is where JWTAuth stores the authenticated *model.User.
const userKey = "user"

// Authenticator resolves a raw bearer token to the user it names.
// *service.AuthService satisfies it.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

// JWTAuth returns an Echo middleware that requires a valid bearer token.
// A request without one is rejected with 401 "not authenticated"; a token
// that does not resolve to a user gets 401 "could not validate
// credentials".  Handlers read the user back with CurrentUser.
func JWTAuth(gate Authenticator, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(c, "not authenticated")
			}

			user, err := gate.CurrentUser(c.Request().Context(), raw)
			if errors.Is(err, service.ErrCouldNotValidate) {
				return unauthorized(c, service.ErrCouldNotValidate.Error())
			}
			if err != nil {
				log.Error("resolve bearer token", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by JWTAuth.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(userKey).(*model.User)
	return u, ok && u != nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.  The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}
