// Package repository contains data access logic for Show domain operations.
// A Show books one artist at one venue at a start instant; listings join
// both parties so handlers never issue a query per row.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/fyyur/internal/model"
)

// showListingSelect joins a show with the names and pictures of its venue
// and artist.  Callers append a WHERE clause and an ORDER BY.
const showListingSelect = `SELECT s.venue_id, s.artist_id, s.start_time,
	v.name, COALESCE(v.image_link, ''), a.name, COALESCE(a.image_link, '')
	FROM shows s
	JOIN venues v ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

const showOrder = ` ORDER BY s.start_time, s.venue_id, s.artist_id`

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a show in its own transaction.  A duplicate
// (venue, artist, start time) triple yields ErrConflict and a reference to
// a missing venue or artist yields ErrInvalidReference.
func (r *ShowRepo) Create(ctx context.Context, s model.Show) error {
	const op = "repository.ShowRepo.Create"
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, q, s.VenueID, s.ArtistID, s.StartTime.UTC())
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

func (r *ShowRepo) query(ctx context.Context, q string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ShowListing{}
	for rows.Next() {
		var l model.ShowListing
		if err := rows.Scan(
			&l.VenueID, &l.ArtistID, &l.StartTime,
			&l.VenueName, &l.VenueImageLink, &l.ArtistName, &l.ArtistImageLink,
		); err != nil {
			return nil, err
		}
		l.StartTime = l.StartTime.UTC()
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every show with its venue and artist details.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.query(ctx, showListingSelect+showOrder)
}

// ListByVenue returns the shows booked at one venue.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.query(ctx, showListingSelect+` WHERE s.venue_id = ?`+showOrder, venueID)
}

// ListByArtist returns the shows one artist plays.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.query(ctx, showListingSelect+` WHERE s.artist_id = ?`+showOrder, artistID)
}

// ListByVenues returns the shows of several venues keyed by venue ID in a
// single query.  Venues without shows are absent from the map.
func (r *ShowRepo) ListByVenues(ctx context.Context, ids []uint64) (map[uint64][]model.ShowListing, error) {
	out := map[uint64][]model.ShowListing{}
	if len(ids) == 0 {
		return out, nil
	}
	q := showListingSelect + ` WHERE s.venue_id IN (` + placeholders(len(ids)) + `)` + showOrder
	shows, err := r.query(ctx, q, uint64Args(ids)...)
	if err != nil {
		return nil, err
	}
	for _, s := range shows {
		out[s.VenueID] = append(out[s.VenueID], s)
	}
	return out, nil
}

// ListByArtists is ListByVenues keyed by artist ID.
func (r *ShowRepo) ListByArtists(ctx context.Context, ids []uint64) (map[uint64][]model.ShowListing, error) {
	out := map[uint64][]model.ShowListing{}
	if len(ids) == 0 {
		return out, nil
	}
	q := showListingSelect + ` WHERE s.artist_id IN (` + placeholders(len(ids)) + `)` + showOrder
	shows, err := r.query(ctx, q, uint64Args(ids)...)
	if err != nil {
		return nil, err
	}
	for _, s := range shows {
		out[s.ArtistID] = append(out[s.ArtistID], s)
	}
	return out, nil
}

func uint64Args(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
