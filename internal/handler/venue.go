package handler

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	q "github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/showtime"
)

// VenueHandler serves the venue pages.
type VenueHandler struct {
	Venues     VenueStore
	Shows      ShowStore
	Classifier *showtime.Classifier
	Events     EventPublisher
}

// NewVenueHandler constructs a VenueHandler and panics if a dependency is nil.
func NewVenueHandler(venues VenueStore, shows ShowStore, cl *showtime.Classifier, events EventPublisher) *VenueHandler {
	if venues == nil || shows == nil || cl == nil || events == nil {
		panic("nil dependency passed to NewVenueHandler")
	}
	return &VenueHandler{Venues: venues, Shows: shows, Classifier: cl, Events: events}
}

// AreaVenues is one (city, state) group of the venue listing.
type AreaVenues struct {
	City   string             `json:"city"`
	State  string             `json:"state"`
	Venues []showtime.Summary `json:"venues"`
}

// VenueDetail is a venue with its shows split into past and upcoming.
type VenueDetail struct {
	model.Venue
	showtime.Classification
}

func venueIDs(venues []model.Venue) []uint64 {
	ids := make([]uint64, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
	}
	return ids
}

// groupByArea puts every venue in exactly one area.  City and state are
// compared ignoring case; an area is labelled by its first venue.  Areas
// are ordered by state then city; venues keep their input order within an
// area.
func groupByArea(venues []model.Venue, summaries []showtime.Summary) []AreaVenues {
	index := map[model.Area]int{}
	keys := []model.Area{}
	out := []AreaVenues{}
	for i, v := range venues {
		a := v.Area()
		k := a.Key()
		pos, ok := index[k]
		if !ok {
			pos = len(out)
			index[k] = pos
			keys = append(keys, k)
			out = append(out, AreaVenues{City: a.City, State: a.State, Venues: []showtime.Summary{}})
		}
		out[pos].Venues = append(out[pos].Venues, summaries[i])
	}
	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := keys[order[i]], keys[order[j]]
		if a.State != b.State {
			return a.State < b.State
		}
		return a.City < b.City
	})
	sorted := make([]AreaVenues, len(out))
	for i, pos := range order {
		sorted[i] = out[pos]
	}
	return sorted
}

func (h *VenueHandler) summaries(ctx context.Context, venues []model.Venue) ([]showtime.Summary, error) {
	shows, err := h.Shows.ListByVenues(ctx, venueIDs(venues))
	if err != nil {
		return nil, err
	}
	out := make([]showtime.Summary, len(venues))
	for i, v := range venues {
		out[i] = h.Classifier.VenueSummary(v, shows[v.ID])
	}
	return out, nil
}

// List handles GET /venues: venues grouped by area.
func (h *VenueHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	venues, err := h.Venues.ListAll(ctx)
	if err != nil {
		return err
	}
	sums, err := h.summaries(ctx, venues)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/venues.html", echo.Map{"areas": groupByArea(venues, sums)})
}

// Search handles POST /venues/search.
func (h *VenueHandler) Search(c echo.Context) error {
	term, err := searchTerm(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	venues, err := h.Venues.SearchByName(ctx, term)
	if err != nil {
		return err
	}
	sums, err := h.summaries(ctx, venues)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "pages/search_venues.html", echo.Map{
		"results":     SearchResults[showtime.Summary]{Count: len(sums), Data: sums},
		"search_term": term,
	})
}

// Show handles GET /venues/:id.
func (h *VenueHandler) Show(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	shows, err := h.Shows.ListByVenue(ctx, id)
	if err != nil {
		return err
	}
	detail := VenueDetail{Venue: *v, Classification: h.Classifier.Classify(shows, showtime.VenueSide)}
	return render(c, http.StatusOK, "pages/show_venue.html", echo.Map{"venue": detail})
}

// CreateForm handles GET /venues/create.
func (h *VenueHandler) CreateForm(c echo.Context) error {
	return render(c, http.StatusOK, "forms/new_venue.html", echo.Map{"form": form.VenueForm{}})
}

// Create handles POST /venues/create.  Invalid input re-renders the form
// with a 400; a storage failure is reported with a flash on the home page.
func (h *VenueHandler) Create(c echo.Context) error {
	var f form.VenueForm
	if err := c.Bind(&f); err != nil {
		return err
	}
	f.Normalize()
	if err := c.Validate(&f); err != nil {
		errs := form.FieldErrors(err)
		if errs == nil {
			return err
		}
		return render(c, http.StatusBadRequest, "forms/new_venue.html", echo.Map{"form": f, "errors": errs})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	v := f.Venue(0)
	if err := h.Venues.Create(ctx, &v); err != nil {
		c.Logger().Errorf("create venue %q: %v", v.Name, err)
		addFlash(c, "An error occurred. Venue "+v.Name+" could not be listed.")
		return render(c, http.StatusOK, "pages/home.html", nil)
	}

	ev := q.NewListingEvent(q.VenueCreated)
	ev.VenueID, ev.Name = v.ID, v.Name
	publish(ctx, c, h.Events, ev)

	addFlash(c, "Venue "+v.Name+" was successfully listed!")
	return render(c, http.StatusOK, "pages/home.html", echo.Map{"venue": v})
}

// EditForm handles GET /venues/:id/edit.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "forms/edit_venue.html", echo.Map{"form": form.VenueFormFrom(*v), "venue_id": id})
}

// Edit handles POST /venues/:id/edit and redirects to the detail page.
func (h *VenueHandler) Edit(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return echo.ErrNotFound
	}
	var f form.VenueForm
	if err := c.Bind(&f); err != nil {
		return err
	}
	f.Normalize()
	if err := c.Validate(&f); err != nil {
		errs := form.FieldErrors(err)
		if errs == nil {
			return err
		}
		return render(c, http.StatusBadRequest, "forms/edit_venue.html", echo.Map{"form": f, "errors": errs, "venue_id": id})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	v := f.Venue(id)
	err := h.Venues.Update(ctx, &v)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		c.Logger().Errorf("update venue %d: %v", id, err)
		addFlash(c, "An error occurred. Venue "+v.Name+" could not be updated.")
		return render(c, http.StatusOK, "pages/home.html", nil)
	}

	ev := q.NewListingEvent(q.VenueUpdated)
	ev.VenueID, ev.Name = v.ID, v.Name
	publish(ctx, c, h.Events, ev)

	addFlash(c, "Venue "+v.Name+" was successfully updated!")
	keepFlashes(c)
	return c.Redirect(http.StatusSeeOther, "/venues/"+strconv.FormatUint(id, 10))
}

// Delete handles DELETE /venues/:id.  The venue's shows go with it.
func (h *VenueHandler) Delete(c echo.Context) error {
	notFound := echo.Map{"success": false, "error": repository.ErrVenueNotFound.Error()}
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, notFound)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return c.JSON(http.StatusNotFound, notFound)
	}
	if err != nil {
		return err
	}

	err = h.Venues.Delete(ctx, id)
	if errors.Is(err, repository.ErrVenueNotFound) {
		return c.JSON(http.StatusNotFound, notFound)
	}
	if err != nil {
		c.Logger().Errorf("delete venue %d: %v", id, err)
		addFlash(c, "An error occurred. Venue "+v.Name+" could not be deleted.")
		keepFlashes(c)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
	}

	ev := q.NewListingEvent(q.VenueDeleted)
	ev.VenueID, ev.Name = id, v.Name
	publish(ctx, c, h.Events, ev)

	addFlash(c, "Venue "+v.Name+" was successfully deleted!")
	keepFlashes(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
