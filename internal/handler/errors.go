package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/twitter-api/internal/service"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError maps a service error onto its status code.  Anything the
// service layer did not classify is logged and reported as a bare 500.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	var (
		verr *service.ValidationError
		cerr *service.ConflictError
		nerr *service.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Fields: verr.Fields})
	case errors.As(err, &cerr):
		return c.JSON(http.StatusBadRequest, errorBody{Error: cerr.Message})
	case errors.As(err, &nerr):
		return c.JSON(http.StatusNotFound, errorBody{Error: nerr.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrCouldNotValidate):
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, errorBody{Error: err.Error()})
	}
	log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
}
