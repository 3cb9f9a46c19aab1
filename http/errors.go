package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

const msgInternalServerError = "Internal Server Error"

// newErrorHandler renders errors as {"<messageKey>": "..."}. Anything that
// is not a client error is logged and hidden behind a generic 500 message.
func newErrorHandler(messageKey string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := msgInternalServerError

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		}

		if status >= http.StatusInternalServerError {
			log.FromContext(c.Request().Context()).WithError(err).Error("Unhandled HTTP error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, map[string]string{messageKey: message})
		}
		if err != nil {
			log.FromContext(c.Request().Context()).WithError(err).Error("Could not write error response")
		}
	}
}
