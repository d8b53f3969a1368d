package handler

import (
	"context"

	"github.com/iliyamo/fyyur/internal/model"
	q "github.com/iliyamo/fyyur/internal/queue"
)

// VenueStore is the venue persistence used by the handlers.
// *repository.VenueRepo satisfies it.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	ListAll(ctx context.Context) ([]model.Venue, error)
	SearchByName(ctx context.Context, term string) ([]model.Venue, error)
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id uint64) error
}

// ArtistStore is the artist persistence used by the handlers.
type ArtistStore interface {
	Create(ctx context.Context, a *model.Artist) error
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	ListAll(ctx context.Context) ([]model.Artist, error)
	SearchByName(ctx context.Context, term string) ([]model.Artist, error)
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id uint64) error
}

// ShowStore is the show persistence used by the handlers.
type ShowStore interface {
	Create(ctx context.Context, s model.Show) error
	ListAll(ctx context.Context) ([]model.ShowListing, error)
	ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error)
	ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error)
	ListByVenues(ctx context.Context, ids []uint64) (map[uint64][]model.ShowListing, error)
	ListByArtists(ctx context.Context, ids []uint64) (map[uint64][]model.ShowListing, error)
}

// EventPublisher sends listing events after a write commits.
type EventPublisher interface {
	Publish(ctx context.Context, ev q.ListingEvent) error
}
