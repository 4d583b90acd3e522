package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		statements := []string{
			`
			CREATE TABLE venues (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				name TEXT NOT NULL,
				sort_name TEXT NOT NULL,
				search_name TEXT NOT NULL,
				city TEXT NOT NULL,
				state TEXT NOT NULL,
				address TEXT NOT NULL,
				phone TEXT,
				image_link TEXT,
				facebook_link TEXT,
				website TEXT,
				seeking_talent BOOLEAN NOT NULL DEFAULT FALSE,
				seeking_description TEXT
			)
`,
			`CREATE INDEX ix_venues_state_city ON venues (state, city)`,
			`CREATE INDEX ix_venues_name ON venues (name COLLATE NOCASE)`,
			`
			CREATE TABLE artists (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				name TEXT NOT NULL,
				sort_name TEXT NOT NULL,
				search_name TEXT NOT NULL,
				city TEXT NOT NULL,
				state TEXT NOT NULL,
				phone TEXT,
				image_link TEXT,
				facebook_link TEXT,
				website TEXT,
				seeking_venue BOOLEAN NOT NULL DEFAULT FALSE,
				seeking_description TEXT
			)
`,
			`CREATE INDEX ix_artists_name ON artists (name COLLATE NOCASE)`,
			`
			CREATE TABLE shows (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				start_time TIMESTAMPTZ NOT NULL,
				artist_id INTEGER NOT NULL REFERENCES artists (id) ON DELETE CASCADE,
				venue_id INTEGER NOT NULL REFERENCES venues (id) ON DELETE CASCADE
			)
`,
			`CREATE INDEX ix_shows_artist_id_start_time ON shows (artist_id, start_time)`,
			`CREATE INDEX ix_shows_venue_id_start_time ON shows (venue_id, start_time)`,
			`CREATE INDEX ix_shows_start_time ON shows (start_time)`,
			`
			CREATE TABLE genres (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				name TEXT NOT NULL,
				search_name TEXT NOT NULL
			)
`,
			`CREATE UNIQUE INDEX ux_genres_search_name ON genres (search_name)`,
			`
			CREATE TABLE venue_genres (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				venue_id INTEGER NOT NULL REFERENCES venues (id) ON DELETE CASCADE,
				genre_id INTEGER NOT NULL REFERENCES genres (id) ON DELETE CASCADE,
				sort_order INTEGER NOT NULL
			)
`,
			`CREATE UNIQUE INDEX ux_venue_genres_venue_id_genre_id ON venue_genres (venue_id, genre_id)`,
			`CREATE INDEX ix_venue_genres_genre_id ON venue_genres (genre_id)`,
			`
			CREATE TABLE artist_genres (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				artist_id INTEGER NOT NULL REFERENCES artists (id) ON DELETE CASCADE,
				genre_id INTEGER NOT NULL REFERENCES genres (id) ON DELETE CASCADE,
				sort_order INTEGER NOT NULL
			)
`,
			`CREATE UNIQUE INDEX ux_artist_genres_artist_id_genre_id ON artist_genres (artist_id, genre_id)`,
			`CREATE INDEX ix_artist_genres_genre_id ON artist_genres (genre_id)`,
		}
		for _, stmt := range statements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	down := func(ctx context.Context, db *bun.DB) error {
		for _, table := range []string{"artist_genres", "venue_genres", "genres", "shows", "artists", "venues"} {
			if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
