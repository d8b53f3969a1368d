package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fyyur/internal/model"
)

// ErrArtistNotFound is returned when an artist cannot be found in the DB.
var ErrArtistNotFound = errors.New("artist not found")

const artistColumns = `id, name, city, state, phone, genres, image_link, facebook_link,
	website, seeking_venue, seeking_description`

// ArtistRepo manages persistence for artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(row rowScanner) (*model.Artist, error) {
	var (
		a                          model.Artist
		image, facebook, web, desc sql.NullString
	)
	if err := row.Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.Genres, &image, &facebook,
		&web, &a.SeekingVenue, &desc,
	); err != nil {
		return nil, err
	}
	a.ImageLink = image.String
	a.FacebookLink = facebook.String
	a.Website = web.String
	a.SeekingDescription = desc.String
	return &a, nil
}

func (r *ArtistRepo) list(ctx context.Context, q string, args ...any) ([]model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new artist in its own transaction and assigns the
// generated ID back to a.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const op = "repository.ArtistRepo.Create"
	const q = `INSERT INTO artists (name, city, state, phone, genres, image_link, facebook_link,
	               website, seeking_venue, seeking_description)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q,
			a.Name, a.City, a.State, a.Phone, a.Genres, nullString(a.ImageLink), nullString(a.FacebookLink),
			nullString(a.Website), a.SeekingVenue, nullString(a.SeekingDescription),
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

// GetByID retrieves an artist by its ID.  It returns ErrArtistNotFound if
// there is no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM artists WHERE id = ?"
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAll returns every artist ordered by name.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	return r.list(ctx, "SELECT "+artistColumns+" FROM artists ORDER BY name, id")
}

// SearchByName returns artists whose name contains term, ignoring case.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	q := "SELECT " + artistColumns + " FROM artists WHERE LOWER(name) LIKE ? ORDER BY name, id"
	return r.list(ctx, q, containsPattern(term))
}

// Update overwrites every column of an existing artist in one transaction.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const op = "repository.ArtistRepo.Update"
	const q = `UPDATE artists
	           SET name = ?, city = ?, state = ?, phone = ?, genres = ?, image_link = ?, facebook_link = ?,
	               website = ?, seeking_venue = ?, seeking_description = ?
	           WHERE id = ?`
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var id uint64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM artists WHERE id = ? FOR UPDATE`, a.ID).Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrArtistNotFound
			}
			return err
		}
		_, err := tx.ExecContext(ctx, q,
			a.Name, a.City, a.State, a.Phone, a.Genres, nullString(a.ImageLink), nullString(a.FacebookLink),
			nullString(a.Website), a.SeekingVenue, nullString(a.SeekingDescription), a.ID,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

// Delete removes an artist together with its shows.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	const op = "repository.ArtistRepo.Delete"
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrArtistNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}
