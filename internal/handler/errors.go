package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders the 404 and 500 pages for browsers and a JSON
// {"error": ...} body for API clients.  Other status codes are written as
// plain text.  Server errors are logged through the echo logger.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var msg any = http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = he.Message
		if he.Internal != nil {
			err = fmt.Errorf("%v: %w", he.Message, he.Internal)
		}
	}
	if code >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		msg = http.StatusText(code)
	}

	var werr error
	switch {
	case c.Request().Method == http.MethodHead:
		werr = c.NoContent(code)
	case WantsJSON(c):
		werr = c.JSON(code, echo.Map{"error": msg})
	case code == http.StatusNotFound:
		werr = c.Render(code, "errors/404.html", echo.Map{})
	case code >= http.StatusInternalServerError:
		werr = c.Render(code, "errors/500.html", echo.Map{})
	default:
		werr = c.String(code, fmt.Sprint(msg))
	}
	if werr != nil {
		c.Logger().Errorf("error handler: %v", werr)
	}
}
