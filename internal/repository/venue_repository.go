// Package repository contains data access logic separated from HTTP handlers.
// This file holds the venue queries: lookup, listing, name search and the
// transactional writes.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fyyur/internal/model"
)

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

const venueColumns = `id, name, city, state, address, phone, image_link, facebook_link,
	genres, website, seeking_talent, seeking_description`

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

func scanVenue(row rowScanner) (*model.Venue, error) {
	var (
		v                          model.Venue
		image, facebook, web, desc sql.NullString
	)
	if err := row.Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &image, &facebook,
		&v.Genres, &web, &v.SeekingTalent, &desc,
	); err != nil {
		return nil, err
	}
	v.ImageLink = image.String
	v.FacebookLink = facebook.String
	v.Website = web.String
	v.SeekingDescription = desc.String
	return &v, nil
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...any) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new venue in its own transaction.  On success the
// venue's ID field holds the auto-generated value; on failure nothing is
// committed.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const op = "repository.VenueRepo.Create"
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
	               genres, website, seeking_talent, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			v.Name, v.City, v.State, v.Address, v.Phone, nullString(v.ImageLink), nullString(v.FacebookLink),
			v.Genres, nullString(v.Website), v.SeekingTalent, nullString(v.SeekingDescription),
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues WHERE id = ?"
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListAll returns every venue ordered by name.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	return r.list(ctx, "SELECT "+venueColumns+" FROM venues ORDER BY name, id")
}

// SearchByName returns venues whose name contains term, ignoring case.
// An empty term matches every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	q := "SELECT " + venueColumns + " FROM venues WHERE LOWER(name) LIKE ? ORDER BY name, id"
	return r.list(ctx, q, containsPattern(term))
}

// Update overwrites every column of an existing venue in one transaction.
// The row is locked first so a missing venue is reported as
// ErrVenueNotFound rather than as an update touching zero rows.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const op = "repository.VenueRepo.Update"
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?, facebook_link = ?,
	               genres = ?, website = ?, seeking_talent = ?, seeking_description = ?
	           WHERE id = ?`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var id uint64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = ? FOR UPDATE`, v.ID).Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		_, err := tx.ExecContext(ctx, q,
			v.Name, v.City, v.State, v.Address, v.Phone, nullString(v.ImageLink), nullString(v.FacebookLink),
			v.Genres, nullString(v.Website), v.SeekingTalent, nullString(v.SeekingDescription), v.ID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

// Delete removes a venue.  Its shows are removed by the ON DELETE CASCADE
// foreign key inside the same transaction.  ErrVenueNotFound is returned
// when no row matched.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	const op = "repository.VenueRepo.Delete"
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}
