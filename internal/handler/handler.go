// Package handler exposes the HTTP handlers of the booking directory.  Every
// page is rendered through echo's Renderer, or as JSON when the client sends
// Accept: application/json.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	q "github.com/iliyamo/fyyur/internal/queue"
)

// requestTimeout bounds the storage work of a single request.
const requestTimeout = 5 * time.Second

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// parseID reads the numeric :id path parameter.  Zero is never a valid ID.
func parseID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// publish sends ev and only logs a failure; the write has already been
// committed.
func publish(ctx context.Context, c echo.Context, p EventPublisher, ev q.ListingEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		c.Logger().Warnf("publish %s: %v", ev.Type, err)
	}
}

// searchTerm returns the required search_term form field.  A missing
// field is a 400; an empty value is a valid term that matches everything.
func searchTerm(c echo.Context) (string, error) {
	params, err := c.FormParams()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	vals, ok := params["search_term"]
	if !ok || len(vals) == 0 {
		return "", echo.NewHTTPError(http.StatusBadRequest, "search_term is required")
	}
	return vals[0], nil
}

// SearchResults is the response of the search pages.
type SearchResults[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

// Home renders the landing page.
func Home(c echo.Context) error {
	return render(c, http.StatusOK, "pages/home.html", nil)
}
