package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterUsers registers /users.  Every route requires a bearer token.
func RegisterUsers(api *echo.Group, d Deps, log *zap.Logger) {
	g := api.Group("/users", protected(d, log)...)

	g.POST("", d.Users.Create)
	g.GET("", d.Users.List)
	g.GET("/:user_id", d.Users.Get)
	g.PUT("/:user_id", d.Users.UpdateUsername)
	g.DELETE("/:user_id", d.Users.Delete)
	g.GET("/:user_id/tweets", d.Users.Tweets)
}
