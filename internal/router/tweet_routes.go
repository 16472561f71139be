package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterTweets registers /tweets.  Every route requires a bearer token.
func RegisterTweets(api *echo.Group, d Deps, log *zap.Logger) {
	g := api.Group("/tweets", protected(d, log)...)

	g.POST("", d.Tweets.Create)
	g.GET("", d.Tweets.List)
	g.GET("/:tweet_id", d.Tweets.Get)
	g.DELETE("/:tweet_id", d.Tweets.Delete)
}
