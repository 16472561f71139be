package handler

import (
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/logging"
)

// Options configures every handler.  Timeout bounds the store work done
// for one request; zero means the request context alone decides.
type Options struct {
	Log     *zap.Logger
	Timeout time.Duration
}

func (o Options) base() base {
	return base{log: logging.OrNop(o.Log), timeout: o.Timeout}
}
