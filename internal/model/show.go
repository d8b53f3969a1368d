package model

import "time"

// Show is a booking of one artist at one venue.  The triple
// (VenueID, ArtistID, StartTime) is the primary key of the `shows` table,
// so the same pair may only be booked again at a different time.  Shows
// are removed by the database when their venue or artist is deleted.
type Show struct {
	VenueID   uint64    // shows.venue_id
	ArtistID  uint64    // shows.artist_id
	StartTime time.Time // shows.start_time (UTC)
}

// ShowListing is a show joined with the names and pictures of both
// parties, as needed by the show list and the past/upcoming breakdowns.
type ShowListing struct {
	Show
	VenueName       string
	VenueImageLink  string
	ArtistName      string
	ArtistImageLink string
}
