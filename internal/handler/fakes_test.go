package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
	q "github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/showtime"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

type recordingRenderer struct {
	name string
	data echo.Map
}

func (r *recordingRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.data, _ = data.(echo.Map)
	_, err := io.WriteString(w, name)
	return err
}

func newTestEcho() (*echo.Echo, *recordingRenderer) {
	e := echo.New()
	rr := &recordingRenderer{}
	e.Renderer = rr
	e.Validator = form.NewValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Logger = log.New("test")
	return e, rr
}

func newFormContext(e *echo.Echo, method, target string, values url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newClassifier() *showtime.Classifier {
	return showtime.NewClassifier(func() time.Time { return testNow }, time.UTC)
}

type fakeVenues struct {
	rows      map[uint64]model.Venue
	nextID    uint64
	createErr error
	updateErr error
	deleteErr error
	calls     int
	shows     *fakeShows // cascade target, may be nil
}

func newFakeVenues(vs ...model.Venue) *fakeVenues {
	f := &fakeVenues{rows: map[uint64]model.Venue{}, nextID: 100}
	for _, v := range vs {
		f.rows[v.ID] = v
	}
	return f
}

func (f *fakeVenues) sorted(keep func(model.Venue) bool) []model.Venue {
	out := []model.Venue{}
	for _, v := range f.rows {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeVenues) Create(_ context.Context, v *model.Venue) error {
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	v.ID = f.nextID
	f.rows[v.ID] = *v
	return nil
}

func (f *fakeVenues) GetByID(_ context.Context, id uint64) (*model.Venue, error) {
	v, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	return &v, nil
}

func (f *fakeVenues) ListAll(context.Context) ([]model.Venue, error) {
	return f.sorted(func(model.Venue) bool { return true }), nil
}

func (f *fakeVenues) SearchByName(_ context.Context, term string) ([]model.Venue, error) {
	term = strings.ToLower(term)
	return f.sorted(func(v model.Venue) bool { return strings.Contains(strings.ToLower(v.Name), term) }), nil
}

func (f *fakeVenues) Update(_ context.Context, v *model.Venue) error {
	f.calls++
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.rows[v.ID]; !ok {
		return repository.ErrVenueNotFound
	}
	f.rows[v.ID] = *v
	return nil
}

func (f *fakeVenues) Delete(_ context.Context, id uint64) error {
	f.calls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return repository.ErrVenueNotFound
	}
	delete(f.rows, id)
	f.shows.cascade(func(s model.ShowListing) bool { return s.VenueID == id })
	return nil
}

type fakeArtists struct {
	rows      map[uint64]model.Artist
	nextID    uint64
	createErr error
	calls     int
	shows     *fakeShows
}

func newFakeArtists(as ...model.Artist) *fakeArtists {
	f := &fakeArtists{rows: map[uint64]model.Artist{}, nextID: 200}
	for _, a := range as {
		f.rows[a.ID] = a
	}
	return f
}

func (f *fakeArtists) sorted(keep func(model.Artist) bool) []model.Artist {
	out := []model.Artist{}
	for _, a := range f.rows {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeArtists) Create(_ context.Context, a *model.Artist) error {
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	a.ID = f.nextID
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeArtists) GetByID(_ context.Context, id uint64) (*model.Artist, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrArtistNotFound
	}
	return &a, nil
}

func (f *fakeArtists) ListAll(context.Context) ([]model.Artist, error) {
	return f.sorted(func(model.Artist) bool { return true }), nil
}

func (f *fakeArtists) SearchByName(_ context.Context, term string) ([]model.Artist, error) {
	term = strings.ToLower(term)
	return f.sorted(func(a model.Artist) bool { return strings.Contains(strings.ToLower(a.Name), term) }), nil
}

func (f *fakeArtists) Update(_ context.Context, a *model.Artist) error {
	f.calls++
	if _, ok := f.rows[a.ID]; !ok {
		return repository.ErrArtistNotFound
	}
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeArtists) Delete(_ context.Context, id uint64) error {
	f.calls++
	if _, ok := f.rows[id]; !ok {
		return repository.ErrArtistNotFound
	}
	delete(f.rows, id)
	f.shows.cascade(func(s model.ShowListing) bool { return s.ArtistID == id })
	return nil
}

type fakeShows struct {
	rows      []model.ShowListing
	createErr error
	created   []model.Show
}

func (f *fakeShows) Create(_ context.Context, s model.Show) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeShows) ListAll(context.Context) ([]model.ShowListing, error) {
	out := append([]model.ShowListing{}, f.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// cascade drops matching shows like the ON DELETE CASCADE foreign keys.
func (f *fakeShows) cascade(gone func(model.ShowListing) bool) {
	if f == nil {
		return
	}
	f.rows = f.filter(func(s model.ShowListing) bool { return !gone(s) })
}

func (f *fakeShows) filter(keep func(model.ShowListing) bool) []model.ShowListing {
	out := []model.ShowListing{}
	for _, s := range f.rows {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func (f *fakeShows) ListByVenue(_ context.Context, id uint64) ([]model.ShowListing, error) {
	return f.filter(func(s model.ShowListing) bool { return s.VenueID == id }), nil
}

func (f *fakeShows) ListByArtist(_ context.Context, id uint64) ([]model.ShowListing, error) {
	return f.filter(func(s model.ShowListing) bool { return s.ArtistID == id }), nil
}

func (f *fakeShows) ListByVenues(_ context.Context, ids []uint64) (map[uint64][]model.ShowListing, error) {
	out := map[uint64][]model.ShowListing{}
	for _, id := range ids {
		if shows := f.filter(func(s model.ShowListing) bool { return s.VenueID == id }); len(shows) > 0 {
			out[id] = shows
		}
	}
	return out, nil
}

func (f *fakeShows) ListByArtists(_ context.Context, ids []uint64) (map[uint64][]model.ShowListing, error) {
	out := map[uint64][]model.ShowListing{}
	for _, id := range ids {
		if shows := f.filter(func(s model.ShowListing) bool { return s.ArtistID == id }); len(shows) > 0 {
			out[id] = shows
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []q.ListingEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, ev q.ListingEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

// Fixture data modelled on the sample listings.
var (
	musicalHop = model.Venue{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA",
		Address: "1015 Folsom Street", Phone: "123-123-1234", Genres: model.Genres{"Jazz", "Reggae"}, SeekingTalent: true}
	duelingPianos = model.Venue{ID: 2, Name: "The Dueling Pianos Bar", City: "New York", State: "NY",
		Address: "335 Delancey Street", Phone: "914-003-1132", Genres: model.Genres{"Classical"}}
	parkSquare = model.Venue{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA",
		Address: "34 Whiskey Moore Ave", Phone: "415-000-1234", Genres: model.Genres{"Rock n Roll", "Jazz"}}

	gunsNPetals = model.Artist{ID: 4, Name: "Guns N Petals", City: "San Francisco", State: "CA",
		Phone: "326-123-5000", Genres: model.Genres{"Rock n Roll"}, SeekingVenue: true}
	mattQuevedo = model.Artist{ID: 5, Name: "Matt Quevedo", City: "New York", State: "NY",
		Phone: "300-400-5000", Genres: model.Genres{"Jazz"}}
)

func listing(v model.Venue, a model.Artist, start time.Time) model.ShowListing {
	return model.ShowListing{
		Show:       model.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: start},
		VenueName:  v.Name,
		ArtistName: a.Name,
	}
}
