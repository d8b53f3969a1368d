// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// Listing event types.
const (
	VenueCreated  = "venue.created"
	VenueUpdated  = "venue.updated"
	VenueDeleted  = "venue.deleted"
	ArtistCreated = "artist.created"
	ArtistUpdated = "artist.updated"
	ArtistDeleted = "artist.deleted"
	ShowCreated   = "show.created"
)

// ListingEvent is published after a venue, artist or show write commits.
// It carries enough for the activity consumer to log the change without
// querying the primary database.
type ListingEvent struct {
	Type       string `json:"type"`
	VenueID    uint64 `json:"venue_id,omitempty"`
	ArtistID   uint64 `json:"artist_id,omitempty"`
	Name       string `json:"name,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewListingEvent stamps an event of type typ with the current UTC time.
func NewListingEvent(typ string) ListingEvent {
	return ListingEvent{Type: typ, OccurredAt: time.Now().UTC().Format(time.RFC3339)}
}
