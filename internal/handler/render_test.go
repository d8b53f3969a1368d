package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/showtime"
	"github.com/iliyamo/fyyur/internal/web"
)

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)

	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", FormatDateTime(ts, "full", time.UTC))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", FormatDateTime(ts, "medium", time.UTC))
	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", FormatDateTime("05/21/2019, 21:30:00", "full", time.UTC))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", FormatDateTime("2019-05-21T21:30:00Z", "medium", time.UTC))
	assert.Equal(t, "soon", FormatDateTime("soon", "full", time.UTC))
}

func TestFormatDateTimeInLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ts := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "Sat 03, 14, 2026 4:00PM", FormatDateTime(ts, "medium", ny))
}

func TestTemplateRendererRendersEveryPage(t *testing.T) {
	r, err := NewTemplateRenderer(web.Templates, time.UTC)
	require.NoError(t, err)

	detail := VenueDetail{
		Venue: musicalHop,
		Classification: showtime.Classification{
			UpcomingShows:      []showtime.ShowSummary{{ArtistID: 4, ArtistName: "Guns N Petals", StartTime: "04/01/2035, 20:00:00"}},
			UpcomingShowsCount: 1,
		},
	}
	base := func(m echo.Map) echo.Map {
		m["states"], m["genres"] = form.States, form.Genres
		if _, ok := m["errors"]; !ok {
			m["errors"] = map[string]string{}
		}
		return m
	}
	cases := map[string]struct {
		data echo.Map
		want string
	}{
		"pages/home.html":   {echo.Map{"flashes": []string{"Venue X was successfully listed!"}}, "Venue X was successfully listed!"},
		"pages/venues.html": {echo.Map{"areas": []AreaVenues{{City: "San Francisco", State: "CA", Venues: []showtime.Summary{{ID: 1, Name: "The Musical Hop"}}}}}, "San Francisco, CA"},
		"pages/show_venue.html": {echo.Map{"venue": detail}, "Sunday April, 1, 2035 at 8:00PM"},
		"pages/show_artist.html": {echo.Map{"artist": ArtistDetail{Artist: gunsNPetals}}, "Currently seeking performance venues"},
		"pages/search_venues.html": {echo.Map{"results": SearchResults[showtime.Summary]{Count: 0, Data: []showtime.Summary{}}, "search_term": "zzz"}, `for "zzz": 0`},
		"pages/artists.html":  {echo.Map{"artists": []showtime.Summary{}}, "No artists listed yet."},
		"pages/shows.html":    {echo.Map{"shows": []ShowRow{{VenueID: 1, VenueName: "The Musical Hop", ArtistName: "Guns N Petals", StartTime: "05/21/2019, 21:30:00"}}}, "Tuesday May, 21, 2019 at 9:30PM"},
		"forms/new_venue.html": {echo.Map{"form": form.VenueForm{State: "NY", Genres: []string{"Jazz"}}, "errors": map[string]string{"phone": "Invalid phone number, use xxx-xxx-xxxx."}}, `<option value="NY" selected>`},
		"forms/edit_artist.html": {echo.Map{"form": form.ArtistFormFrom(gunsNPetals), "artist_id": uint64(4)}, `action="/artists/4/edit"`},
		"forms/new_show.html": {echo.Map{"form": form.ShowForm{StartTime: "2026-10-17 12:00:00"}}, "2026-10-17 12:00:00"},
		"errors/404.html":     {echo.Map{}, "Not Found"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, name, base(tc.data), nil))
			assert.Contains(t, buf.String(), tc.want)
		})
	}

	assert.Error(t, r.Render(&bytes.Buffer{}, "pages/missing.html", echo.Map{}, nil))
}

func TestFlashSurvivesRedirect(t *testing.T) {
	e, _ := newTestEcho()

	c, rec := newFormContext(e, http.MethodPost, "/venues/1/edit", nil)
	addFlash(c, "Venue A was successfully updated!")
	keepFlashes(c)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/venues/1", nil)
	req.AddCookie(cookies[0])
	next := e.NewContext(req, httptest.NewRecorder())
	addFlash(next, "second")
	assert.Equal(t, []string{"Venue A was successfully updated!", "second"}, takeFlashes(next))
	assert.Empty(t, takeFlashes(next))
	assert.True(t, HasFlash(next))

	plain := e.NewContext(httptest.NewRequest(http.MethodGet, "/venues/1", nil), httptest.NewRecorder())
	assert.False(t, HasFlash(plain))
}

func TestHTTPErrorHandler(t *testing.T) {
	e, rr := newTestEcho()

	t.Run("404 page", func(t *testing.T) {
		c, rec := newFormContext(e, http.MethodGet, "/nowhere", nil)
		HTTPErrorHandler(echo.ErrNotFound, c)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "errors/404.html", rr.name)
	})

	t.Run("500 page", func(t *testing.T) {
		c, rec := newFormContext(e, http.MethodGet, "/venues", nil)
		HTTPErrorHandler(errors.New("db is down"), c)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "errors/500.html", rr.name)
	})

	t.Run("json", func(t *testing.T) {
		c, rec := newFormContext(e, http.MethodGet, "/venues/9", nil)
		c.Request().Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		HTTPErrorHandler(echo.ErrNotFound, c)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Not Found", body["error"])
	})

	t.Run("bad request", func(t *testing.T) {
		c, rec := newFormContext(e, http.MethodPost, "/venues/search", nil)
		HTTPErrorHandler(echo.NewHTTPError(http.StatusBadRequest, "search_term is required"), c)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "search_term is required", rec.Body.String())
	})
}

func TestWantsJSON(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.False(t, WantsJSON(c))

	req.Header.Set(echo.HeaderAccept, "text/html,application/xhtml+xml,application/json;q=0.9")
	assert.False(t, WantsJSON(c))

	req.Header.Set(echo.HeaderAccept, "application/json")
	assert.True(t, WantsJSON(c))
}
