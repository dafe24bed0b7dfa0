package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func statusFor(kind Kind) int {
	switch kind {
	case NotFound:
		return http.StatusNotFound
	case Validation:
		return http.StatusBadRequest
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HTTPErrorHandler maps taxonomy errors to HTTP responses. Internal causes are
// only included in the body when dev is true.
func HTTPErrorHandler(log *zap.Logger, dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, echo.Map{"error": echo.Map{"kind": http.StatusText(he.Code), "message": he.Message}})
			return
		}

		var e *Error
		if !errors.As(err, &e) {
			e = Wrap(Unexpected, "internal error", err)
		}

		status := statusFor(e.Kind)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		body := echo.Map{"kind": string(e.Kind), "message": e.Message}
		if dev && e.Err != nil {
			body["detail"] = e.Err.Error()
		}
		_ = c.JSON(status, echo.Map{"error": body})
	}
}
