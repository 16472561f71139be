package router // package router defines how HTTP routes are registered for the API

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/config"
	"github.com/iliyamo/twitter-api/internal/handler"
	"github.com/iliyamo/twitter-api/internal/logging"
	"github.com/iliyamo/twitter-api/internal/middleware"
)

// APIPrefix is the path every versioned route lives under.
const APIPrefix = "/api/v1"

// Deps is everything the router wires together.  Redis is optional; with
// a nil client rate limiting and caching are skipped.
type Deps struct {
	Auth   *handler.AuthHandler
	Users  *handler.UserHandler
	Tweets *handler.TweetHandler

	Gate middleware.Authenticator
	DB   handler.Pinger

	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig

	Log *zap.Logger
}

// New builds the Echo instance with every route registered.
func New(d Deps) *echo.Echo {
	log := logging.OrNop(d.Log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	RegisterRoutes(e, d.DB)
	api := e.Group(APIPrefix)
	RegisterAuth(api, d, log)
	RegisterUsers(api, d, log)
	RegisterTweets(api, d, log)
	return e
}

// RegisterRoutes registers the probes, which sit outside the API prefix
// and need no authentication.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	if db != nil {
		e.GET("/readyz", handler.Ready(db))
	}
}

// protected returns the middleware chain for authenticated routes.  The
// limiter and cache run after JWTAuth so their keys include the user.
func protected(d Deps, log *zap.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(d.Gate, log),
		middleware.NewTokenBucket(d.RateLimit, d.Redis, log),
		middleware.InvalidateCache(d.Cache, d.Redis, log),
		middleware.NewRedisCache(d.Cache, d.Redis, log),
	}
}

// errorHandler renders errors that escape the handlers, mostly unknown
// routes and wrong methods, in the same {"error": ...} shape.
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := "internal server error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
		} else {
			log.Error("unhandled error", zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, echo.Map{"error": msg})
		}
		if err != nil {
			log.Warn("write error response", zap.Error(err))
		}
	}
}
