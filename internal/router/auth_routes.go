package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/middleware"
)

// RegisterAuth registers signup and login, which are public but share a
// smaller rate limit bucket, and /me, which requires a token.
func RegisterAuth(api *echo.Group, d Deps, log *zap.Logger) {
	authLimit := d.RateLimit.WithCapacity(d.RateLimit.AuthCapacity, "auth")
	limiter := middleware.NewTokenBucket(authLimit, d.Redis, log)

	api.POST("/signup", d.Auth.Signup, limiter, middleware.InvalidateCache(d.Cache, d.Redis, log))
	api.POST("/login", d.Auth.Login, limiter)

	api.GET("/me", d.Auth.Me, protected(d, log)...)
}
