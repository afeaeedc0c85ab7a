package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	dto "task-management.com/task-management/internal/data_models"
	apperrors "task-management.com/task-management/internal/errors"
)

// ErrorHandler renders every error as {"error": message}. Application errors
// carry their own status; anything unknown is a 500 whose cause is logged but
// not exposed.
func ErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			appErr *apperrors.Exception
			he     *echo.HTTPError
		)
		status := http.StatusInternalServerError
		message := http.StatusText(status)
		switch {
		case errors.As(err, &appErr):
			status, message = appErr.StatusCode, appErr.Message
		case errors.As(err, &he):
			status, message = he.Code, fmt.Sprint(he.Message)
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request error", "method", c.Request().Method, "path", c.Path(), "err", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, dto.ErrorResponse{Error: message})
		}
		if err != nil {
			logger.Error("failed to write error response", "err", err)
		}
	}
}
