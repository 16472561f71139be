package handler // handler defines http handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/model"
	"github.com/iliyamo/twitter-api/internal/service"
)

// base carries what every handler needs besides its service.
type base struct {
	log     *zap.Logger
	timeout time.Duration
}

// ctx derives the store context for one request.
func (b base) ctx(c echo.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(c.Request().Context())
	}
	return context.WithTimeout(c.Request().Context(), b.timeout)
}

func (b base) fail(c echo.Context, err error) error { return respondError(c, b.log, err) }

// pathUUID reads a UUID path parameter and returns it in canonical form.
func pathUUID(c echo.Context, name string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		return "", service.Invalid(name, "must be a valid UUID")
	}
	return id.String(), nil
}

// queryPage reads ?skip= and ?limit=.  Missing values take the defaults;
// non-numeric values are a validation error naming the first bad parameter
// in skip, limit order.  Range checks happen in the service.
func queryPage(c echo.Context) (model.Page, error) {
	page := model.DefaultPage()
	params := []struct {
		name string
		dst  *int
	}{
		{"skip", &page.Skip},
		{"limit", &page.Limit},
	}
	for _, p := range params {
		raw := strings.TrimSpace(c.QueryParam(p.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return model.Page{}, service.Invalid(p.name, "must be an integer")
		}
		*p.dst = n
	}
	return page, nil
}

// bindBody decodes the request body into dst, reporting decode problems
// as a validation error.
func bindBody(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		msg := "invalid request body"
		if he, ok := err.(*echo.HTTPError); ok && he.Internal != nil {
			msg = he.Internal.Error()
		}
		return service.Invalid("body", msg)
	}
	return nil
}
