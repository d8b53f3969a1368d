package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	q "github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/showtime"
)

// ArtistHandler serves the artist pages.
type ArtistHandler struct {
	Artists    ArtistStore
	Shows      ShowStore
	Classifier *showtime.Classifier
	Events     EventPublisher
}

// NewArtistHandler constructs an ArtistHandler and panics if a dependency is nil.
func NewArtistHandler(artists ArtistStore, shows ShowStore, cl *showtime.Classifier, events EventPublisher) *ArtistHandler {
	if artists == nil || shows == nil || cl == nil || events == nil {
		panic("nil dependency passed to NewArtistHandler")
	}
	return &ArtistHandler{Artists: artists, Shows: shows, Classifier: cl, Events: events}
}

// ArtistDetail is an artist with its shows split into past and upcoming.
type ArtistDetail struct {
	model.Artist
	showtime.Classification
}

func (h *ArtistHandler) summaries(ctx context.Context, artists []model.Artist) ([]showtime.Summary, error) {
	ids := make([]uint64, len(artists))
	for i, a := range artists {
		ids[i] = a.ID
	}
	shows, err := h.Shows.ListByArtists(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]showtime.Summary, len(artists))
	for i, a := range artists {
		out[i] = h.Classifier.ArtistSummary(a, shows[a.ID])
	}
	return out, nil
}

// List handles GET /artists.
func (h *ArtistHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return err
	}
	sums, err := h.summaries(ctx, artists)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/artists.html", echo.Map{"artists": sums})
}

// Search handles POST /artists/search.
func (h *ArtistHandler) Search(c echo.Context) error {
	term, err := searchTerm(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	artists, err := h.Artists.SearchByName(ctx, term)
	if err != nil {
		return err
	}
	sums, err := h.summaries(ctx, artists)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/search_artists.html", echo.Map{
		"results":     SearchResults[showtime.Summary]{Count: len(sums), Data: sums},
		"search_term": term,
	})
}

// Show handles GET /artists/:id.
func (h *ArtistHandler) Show(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByArtist(ctx, id)
	if err != nil {
		return err
	}
	detail := ArtistDetail{Artist: *a, Classification: h.Classifier.Classify(shows, showtime.ArtistSide)}
	return render(c, http.StatusOK, "pages/show_artist.html", echo.Map{"artist": detail})
}

// CreateForm handles GET /artists/create.
func (h *ArtistHandler) CreateForm(c echo.Context) error {
	return render(c, http.StatusOK, "forms/new_artist.html", echo.Map{"form": form.ArtistForm{}})
}

// Create handles POST /artists/create.
func (h *ArtistHandler) Create(c echo.Context) error {
	var f form.ArtistForm
	if err := c.Bind(&f); err != nil {
		return err
	}
	f.Normalize()
	if err := c.Validate(&f); err != nil {
		errs := form.FieldErrors(err)
		if errs == nil {
			return err
		}
		return render(c, http.StatusBadRequest, "forms/new_artist.html", echo.Map{"form": f, "errors": errs})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	a := f.Artist(0)
	if err := h.Artists.Create(ctx, &a); err != nil {
		c.Logger().Errorf("create artist %q: %v", a.Name, err)
		addFlash(c, "An error occurred. Artist "+a.Name+" could not be listed.")
		return render(c, http.StatusOK, "pages/home.html", nil)
	}

	ev := q.NewListingEvent(q.ArtistCreated)
	ev.ArtistID, ev.Name = a.ID, a.Name
	publish(ctx, c, h.Events, ev)

	addFlash(c, "Artist "+a.Name+" was successfully listed!")
	return render(c, http.StatusOK, "pages/home.html", echo.Map{"artist": a})
}

// EditForm handles GET /artists/:id/edit.
func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "forms/edit_artist.html", echo.Map{"form": form.ArtistFormFrom(*a), "artist_id": id})
}

// Edit handles POST /artists/:id/edit.
func (h *ArtistHandler) Edit(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	var f form.ArtistForm
	if err := c.Bind(&f); err != nil {
		return err
	}
	f.Normalize()
	if err := c.Validate(&f); err != nil {
		errs := form.FieldErrors(err)
		if errs == nil {
			return err
		}
		return render(c, http.StatusBadRequest, "forms/edit_artist.html", echo.Map{"form": f, "errors": errs, "artist_id": id})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	a := f.Artist(id)
	err := h.Artists.Update(ctx, &a)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		c.Logger().Errorf("update artist %d: %v", id, err)
		addFlash(c, "An error occurred. Artist "+a.Name+" could not be updated.")
		return render(c, http.StatusOK, "pages/home.html", nil)
	}

	ev := q.NewListingEvent(q.ArtistUpdated)
	ev.ArtistID, ev.Name = a.ID, a.Name
	publish(ctx, c, h.Events, ev)

	addFlash(c, "Artist "+a.Name+" was successfully updated!")
	keepFlashes(c)
	return c.Redirect(http.StatusSeeOther, "/artists/"+strconv.FormatUint(id, 10))
}

// Delete handles DELETE /artists/:id.
func (h *ArtistHandler) Delete(c echo.Context) error {
	notFound := echo.Map{"success": false, "error": repository.ErrArtistNotFound.Error()}
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, notFound)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	a, err := h.Artists.GetByID(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return c.JSON(http.StatusNotFound, notFound)
	}
	if err != nil {
		return err
	}

	err = h.Artists.Delete(ctx, id)
	if errors.Is(err, repository.ErrArtistNotFound) {
		return c.JSON(http.StatusNotFound, notFound)
	}
	if err != nil {
		c.Logger().Errorf("delete artist %d: %v", id, err)
		addFlash(c, "An error occurred. Artist "+a.Name+" could not be deleted.")
		keepFlashes(c)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
	}

	ev := q.NewListingEvent(q.ArtistDeleted)
	ev.ArtistID, ev.Name = id, a.Name
	publish(ctx, c, h.Events, ev)

	addFlash(c, "Artist "+a.Name+" was successfully deleted!")
	keepFlashes(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
