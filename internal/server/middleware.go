package server

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
)

// errorHandler renders failed requests in the same envelope the controller
// uses for successes. Server-side failures are logged with the request
// context so the request id travels with them.
func errorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprintf("%v", he.Message)
		}

		ctx := c.Request().Context()
		if code >= http.StatusInternalServerError {
			log.Errorw(ctx, "request failed", "error", err, "status", code)
		}

		if c.Response().Committed {
			return
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, map[string]string{
				"status":  "error",
				"message": message,
			})
		}
		if werr != nil {
			log.Errorw(ctx, "write error response", "error", werr)
		}
	}
}
