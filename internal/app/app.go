// Package app assembles the HTTP server from configuration and the
// long-lived handles (database, Redis, event publisher).
package app

import (
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/config"
	"github.com/iliyamo/twitter-api/internal/handler"
	"github.com/iliyamo/twitter-api/internal/queue"
	"github.com/iliyamo/twitter-api/internal/router"
	"github.com/iliyamo/twitter-api/internal/service"
	"github.com/iliyamo/twitter-api/internal/utils"
)

// App is a wired server.  Events must be drained with Close on shutdown.
type App struct {
	Echo   *echo.Echo
	events *service.Notifier
}

// Options are the limits that are not part of Config because they come
// from their own environment loaders.
type Options struct {
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
}

// New wires services, handlers and routes.  rdb and pub may be nil.
func New(cfg config.Config, db *sqlx.DB, rdb *redis.Client, pub queue.Publisher, opts Options, log *zap.Logger) (*App, error) {
	tokens, err := utils.NewTokenManager(utils.TokenConfig{
		Secret:    cfg.JWT.Secret,
		Algorithm: cfg.JWT.Algorithm,
		TTL:       cfg.AccessTTL(),
	})
	if err != nil {
		return nil, err
	}

	events := service.NewNotifier(pub, log)
	users := service.NewUserService(db, events, log, cfg.BcryptCost)
	tweets := service.NewTweetService(db, events, log)
	auth := service.NewAuthService(users, tokens, log)

	hopts := handler.Options{Log: log, Timeout: cfg.RequestTimeout}
	e := router.New(router.Deps{
		Auth:      handler.NewAuthHandler(auth, hopts),
		Users:     handler.NewUserHandler(users, tweets, hopts),
		Tweets:    handler.NewTweetHandler(tweets, hopts),
		Gate:      auth,
		DB:        db,
		Redis:     rdb,
		RateLimit: opts.RateLimit,
		Cache:     opts.Cache,
		Log:       log,
	})
	return &App{Echo: e, events: events}, nil
}

// Close waits for in-flight activity events.
func (a *App) Close() { a.events.Wait() }
