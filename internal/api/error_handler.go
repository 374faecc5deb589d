package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// NewHTTPErrorHandler returns the last-resort error handler. Handlers map
// their own domain errors; anything that reaches this point is either an
// echo-level error (bind failure, unknown route) or an unexpected failure.
//
// In development the 500 body echoes the error string, matching what the
// internal tools expect; in any other environment the detail stays in the
// logs.
func NewHTTPErrorHandler(log zerolog.Logger, env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code == http.StatusNotFound {
				_ = c.JSON(http.StatusNotFound, echo.Map{"error": "404 Not Found"})
				return
			}
			_ = c.JSON(he.Code, echo.Map{"message": fmt.Sprintf("%v", he.Message)})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		msg := "Internal Server Error"
		if env == "development" {
			msg = fmt.Sprintf("Internal Server Error :%v", err)
		}
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"message": msg})
	}
}
