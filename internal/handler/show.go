package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	q "github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/showtime"
)

// ShowHandler serves the show list and the show form.
type ShowHandler struct {
	Shows      ShowStore
	Venues     VenueStore
	Artists    ArtistStore
	Classifier *showtime.Classifier
	Events     EventPublisher
	Location   *time.Location // zone of times typed into the form
	Now        func() time.Time
}

// NewShowHandler constructs a ShowHandler and panics if a dependency is nil.
func NewShowHandler(shows ShowStore, venues VenueStore, artists ArtistStore, cl *showtime.Classifier, events EventPublisher, loc *time.Location) *ShowHandler {
	if shows == nil || venues == nil || artists == nil || cl == nil || events == nil {
		panic("nil dependency passed to NewShowHandler")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ShowHandler{Shows: shows, Venues: venues, Artists: artists, Classifier: cl, Events: events, Location: loc, Now: time.Now}
}

// ShowRow is one entry of the show list.
type ShowRow struct {
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// List handles GET /shows.
func (h *ShowHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	shows, err := h.Shows.ListAll(ctx)
	if err != nil {
		return err
	}
	rows := make([]ShowRow, len(shows))
	for i, s := range shows {
		rows[i] = ShowRow{
			VenueID:         s.VenueID,
			VenueName:       s.VenueName,
			ArtistID:        s.ArtistID,
			ArtistName:      s.ArtistName,
			ArtistImageLink: s.ArtistImageLink,
			StartTime:       h.Classifier.FormatStart(s.StartTime),
		}
	}
	return render(c, http.StatusOK, "pages/shows.html", echo.Map{"shows": rows})
}

// formPage renders the show form with the venue and artist choices.
func (h *ShowHandler) formPage(c echo.Context, code int, f form.ShowForm, errs map[string]string) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	venues, err := h.Venues.ListAll(ctx)
	if err != nil {
		return err
	}
	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return err
	}
	data := echo.Map{"form": f, "venues": venues, "artists": artists}
	if errs != nil {
		data["errors"] = errs
	}
	return render(c, code, "forms/new_show.html", data)
}

// CreateForm handles GET /shows/create.
func (h *ShowHandler) CreateForm(c echo.Context) error {
	return h.formPage(c, http.StatusOK, form.NewShowForm(h.Now(), h.Location), nil)
}

// Create handles POST /shows/create.  A duplicate booking or a reference
// to a missing venue or artist is reported with a flash, like any other
// storage failure.
func (h *ShowHandler) Create(c echo.Context) error {
	var f form.ShowForm
	if err := c.Bind(&f); err != nil {
		return err
	}
	if err := c.Validate(&f); err != nil {
		errs := form.FieldErrors(err)
		if errs == nil {
			return err
		}
		return h.formPage(c, http.StatusBadRequest, f, errs)
	}
	s, err := f.Show(h.Location)
	if err != nil {
		return h.formPage(c, http.StatusBadRequest, f, map[string]string{"start_time": "Not a valid datetime value."})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Shows.Create(ctx, s); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			c.Logger().Warnf("duplicate show venue=%d artist=%d start=%s: %v", s.VenueID, s.ArtistID, s.StartTime.Format(time.RFC3339), err)
		case errors.Is(err, repository.ErrInvalidReference):
			c.Logger().Warnf("show references missing venue=%d or artist=%d: %v", s.VenueID, s.ArtistID, err)
		default:
			c.Logger().Errorf("create show: %v", err)
		}
		addFlash(c, "An error occurred. Show could not be listed.")
		return render(c, http.StatusOK, "pages/home.html", nil)
	}

	ev := q.NewListingEvent(q.ShowCreated)
	ev.VenueID, ev.ArtistID = s.VenueID, s.ArtistID
	ev.StartTime = s.StartTime.Format(time.RFC3339)
	publish(ctx, c, h.Events, ev)

	addFlash(c, "Show was successfully listed!")
	return render(c, http.StatusOK, "pages/home.html", nil)
}
