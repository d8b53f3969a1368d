package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
)

// Migrate creates the schema if it does not exist yet.  Statements run in
// order; each one is idempotent so Migrate is safe to call on every start.
func Migrate(ctx context.Context, db *sql.DB, log echo.Logger) error {
	migrations := []string{
		createVenuesTable,
		createArtistsTable,
		createShowsTable,
	}

	for i, migration := range migrations {
		log.Debugf("running migration %d/%d", i+1, len(migrations))
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info("schema is up to date")
	return nil
}

const createVenuesTable = `
CREATE TABLE IF NOT EXISTS venues (
    id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    name                VARCHAR(255) NOT NULL,
    city                VARCHAR(120) NOT NULL,
    state               VARCHAR(120) NOT NULL,
    address             VARCHAR(120) NOT NULL,
    phone               VARCHAR(120) NOT NULL,
    image_link          VARCHAR(500) NULL,
    facebook_link       VARCHAR(120) NULL,
    genres              JSON NOT NULL,
    website             VARCHAR(120) NULL,
    seeking_talent      TINYINT(1) NOT NULL DEFAULT 0,
    seeking_description TEXT NULL,
    INDEX idx_venues_area (state, city),
    INDEX idx_venues_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const createArtistsTable = `
CREATE TABLE IF NOT EXISTS artists (
    id                  BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    name                VARCHAR(255) NOT NULL,
    city                VARCHAR(120) NOT NULL,
    state               VARCHAR(120) NOT NULL,
    phone               VARCHAR(120) NOT NULL,
    genres              JSON NOT NULL,
    image_link          VARCHAR(500) NULL,
    facebook_link       VARCHAR(120) NULL,
    website             VARCHAR(120) NULL,
    seeking_venue       TINYINT(1) NOT NULL DEFAULT 0,
    seeking_description TEXT NULL,
    INDEX idx_artists_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const createShowsTable = `
CREATE TABLE IF NOT EXISTS shows (
    venue_id   BIGINT UNSIGNED NOT NULL,
    artist_id  BIGINT UNSIGNED NOT NULL,
    start_time DATETIME NOT NULL,
    PRIMARY KEY (venue_id, artist_id, start_time),
    INDEX idx_shows_artist (artist_id),
    INDEX idx_shows_start (start_time),
    CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues(id) ON DELETE CASCADE,
    CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
