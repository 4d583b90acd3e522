package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"
)

func TestBringUpToDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	group, err := BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.False(t, group.IsZero())

	for _, table := range []string{"venues", "artists", "shows", "genres", "venue_genres", "artist_genres"} {
		var n int
		err := db.NewSelect().
			ColumnExpr("count(*)").
			TableExpr("sqlite_master").
			Where("type = 'table' AND name = ?", table).
			Scan(ctx, &n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}

	// a second run is a no-op
	group, err = BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.True(t, group.IsZero())

	migrator := migrate.NewMigrator(db, Migrations)
	rolledBack, err := migrator.Rollback(ctx)
	require.NoError(t, err)
	assert.False(t, rolledBack.IsZero())
}
