// Package showtime splits the shows of a venue or an artist into past and
// upcoming relative to the moment of the request, and builds the compact
// summaries used by list and search pages.  Nothing here is persisted: the
// split is recomputed on every read.
package showtime

import (
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// StartTimeLayout is the format of start times inside show summaries.
const StartTimeLayout = "01/02/2006, 15:04:05"

// Side tells the classifier which entity owns the shows being classified.
// Summaries always describe the other party.
type Side int

const (
	VenueSide  Side = iota // shows of a venue; summaries describe artists
	ArtistSide             // shows of an artist; summaries describe venues
)

// ShowSummary describes the counterpart of one show.  Only the fields of
// the counterpart's side are set.
type ShowSummary struct {
	VenueID         uint64 `json:"venue_id,omitempty"`
	VenueName       string `json:"venue_name,omitempty"`
	VenueImageLink  string `json:"venue_image_link,omitempty"`
	ArtistID        uint64 `json:"artist_id,omitempty"`
	ArtistName      string `json:"artist_name,omitempty"`
	ArtistImageLink string `json:"artist_image_link,omitempty"`
	StartTime       string `json:"start_time"`
}

// Classification is the past/upcoming breakdown attached to detail pages.
type Classification struct {
	PastShows          []ShowSummary `json:"past_shows"`
	UpcomingShows      []ShowSummary `json:"upcoming_shows"`
	PastShowsCount     int           `json:"past_shows_count"`
	UpcomingShowsCount int           `json:"upcoming_shows_count"`
}

// Summary is the list projection of a venue or an artist.
type Summary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// Classifier partitions shows against a clock.
type Classifier struct {
	now func() time.Time
	loc *time.Location
}

// NewClassifier returns a Classifier reading the time from now and
// formatting start times in loc.  Nil arguments mean time.Now and UTC.
func NewClassifier(now func() time.Time, loc *time.Location) *Classifier {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Classifier{now: now, loc: loc}
}

// IsUpcoming reports whether a show starting at start is upcoming at now.
// A show starting exactly at now counts as upcoming.
func IsUpcoming(start, now time.Time) bool {
	return !start.Before(now)
}

// Classify splits shows into past and upcoming using a single reading of
// the clock, so every show lands in exactly one of the two sets.
func (c *Classifier) Classify(shows []model.ShowListing, side Side) Classification {
	now := c.now()
	out := Classification{
		PastShows:     []ShowSummary{},
		UpcomingShows: []ShowSummary{},
	}
	for _, s := range shows {
		sum := c.summarize(s, side)
		if IsUpcoming(s.StartTime, now) {
			out.UpcomingShows = append(out.UpcomingShows, sum)
		} else {
			out.PastShows = append(out.PastShows, sum)
		}
	}
	out.PastShowsCount = len(out.PastShows)
	out.UpcomingShowsCount = len(out.UpcomingShows)
	return out
}

// CountUpcoming returns the number of upcoming shows without building
// summaries.
func (c *Classifier) CountUpcoming(shows []model.ShowListing) int {
	now := c.now()
	n := 0
	for _, s := range shows {
		if IsUpcoming(s.StartTime, now) {
			n++
		}
	}
	return n
}

// VenueSummary projects a venue for list and search pages.
func (c *Classifier) VenueSummary(v model.Venue, shows []model.ShowListing) Summary {
	return Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: c.CountUpcoming(shows)}
}

// ArtistSummary projects an artist for list and search pages.
func (c *Classifier) ArtistSummary(a model.Artist, shows []model.ShowListing) Summary {
	return Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: c.CountUpcoming(shows)}
}

// FormatStart renders a start time the way show summaries do.
func (c *Classifier) FormatStart(t time.Time) string {
	return t.In(c.loc).Format(StartTimeLayout)
}

func (c *Classifier) summarize(s model.ShowListing, side Side) ShowSummary {
	sum := ShowSummary{StartTime: c.FormatStart(s.StartTime)}
	if side == VenueSide {
		sum.ArtistID = s.ArtistID
		sum.ArtistName = s.ArtistName
		sum.ArtistImageLink = s.ArtistImageLink
	} else {
		sum.VenueID = s.VenueID
		sum.VenueName = s.VenueName
		sum.VenueImageLink = s.VenueImageLink
	}
	return sum
}
