package middleware

import "github.com/labstack/echo/v4"

// userID names the caller for rate limit and cache keys.  Requests that
// have not passed JWTAuth are "anon".
func userID(c echo.Context) string {
	if u, ok := CurrentUser(c); ok && u.UserID != "" {
		return u.UserID
	}
	return "anon"
}
