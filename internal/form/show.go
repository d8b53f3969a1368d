package form

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// startTimeLayouts are tried in order.  Layouts without a zone are read in
// the configured location.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ErrStartTime is returned for a start time in no accepted layout.
var ErrStartTime = errors.New("invalid start time")

// ParseStartTime reads a show start time.  RFC 3339 values carry their own
// offset; other layouts are interpreted in loc (UTC when nil).  The result
// is in UTC.
func ParseStartTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrStartTime
}

// ShowForm is the create form of a show.  IDs stay text so a bad value is
// reported as a field error instead of a bind failure.
type ShowForm struct {
	ArtistID  string `form:"artist_id" json:"artist_id" validate:"required,id"`
	VenueID   string `form:"venue_id" json:"venue_id" validate:"required,id"`
	StartTime string `form:"start_time" json:"start_time" validate:"required,showtime"`
}

// Show converts a validated form into a model, reading the start time in
// loc.
func (f ShowForm) Show(loc *time.Location) (model.Show, error) {
	artistID, err := strconv.ParseUint(strings.TrimSpace(f.ArtistID), 10, 64)
	if err != nil {
		return model.Show{}, err
	}
	venueID, err := strconv.ParseUint(strings.TrimSpace(f.VenueID), 10, 64)
	if err != nil {
		return model.Show{}, err
	}
	start, err := ParseStartTime(f.StartTime, loc)
	if err != nil {
		return model.Show{}, err
	}
	return model.Show{VenueID: venueID, ArtistID: artistID, StartTime: start}, nil
}

// NewShowForm returns the blank form with the start time defaulted to now,
// matching the form's placeholder.
func NewShowForm(now time.Time, loc *time.Location) ShowForm {
	if loc == nil {
		loc = time.UTC
	}
	return ShowForm{StartTime: now.In(loc).Format("2006-01-02 15:04:05")}
}
