package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanm101/giantbomb"
	"github.com/ryanm101/giantbomb/internal/metrics"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	db, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
	assert.Equal(t, dbPath, db.Path())
}

func TestSchemaVersion(t *testing.T) {
	db := openTestDB(t)

	var version int
	err := db.Conn().QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestReopenKeepsSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	db, err := Open(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	require.NoError(t, db.Conn().QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&n))
	assert.Equal(t, 2, n, "migrations should run once")
}

func TestUpsertAndGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	game := giantbomb.Game{
		ID:   42,
		Name: "Foo",
		Deck: "A game",
		Image: &giantbomb.Image{
			SmallURL: "https://img/small.jpg",
			SuperURL: "https://img/super.jpg",
		},
		APIDetailURL: "https://www.giantbomb.com/api/game/3030-42/",
	}
	row, err := FromGame(game)
	require.NoError(t, err)
	require.NoError(t, db.Upsert(ctx, row))

	got, err := db.Get(ctx, "game", 42)
	require.NoError(t, err)
	assert.Equal(t, "Foo", got.Name)
	assert.Equal(t, "A game", got.Deck)
	assert.Equal(t, "https://img/super.jpg", got.ImageURL)
	assert.NotEmpty(t, got.FetchedAt)

	var decoded giantbomb.Game
	require.NoError(t, json.Unmarshal(got.Payload, &decoded))
	assert.Equal(t, game, decoded)

	game.Name = "Foo Remastered"
	row, err = FromGame(game)
	require.NoError(t, err)
	require.NoError(t, db.Upsert(ctx, row))

	got, err = db.Get(ctx, "game", 42)
	require.NoError(t, err)
	assert.Equal(t, "Foo Remastered", got.Name)
}

func TestGetNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Get(context.Background(), "game", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndCounts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	var rows []Row
	for _, p := range []giantbomb.Platform{
		{ID: 2, Name: "Zeebo"},
		{ID: 1, Name: "Amiga"},
	} {
		row, err := FromPlatform(p)
		require.NoError(t, err)
		rows = append(rows, row)
	}
	genre, err := FromGenre(giantbomb.Genre{ID: 5, Name: "Action"})
	require.NoError(t, err)
	rows = append(rows, genre)
	require.NoError(t, db.Upsert(ctx, rows...))

	platforms, err := db.List(ctx, "platform")
	require.NoError(t, err)
	require.Len(t, platforms, 2)
	assert.Equal(t, "Amiga", platforms[0].Name)
	assert.Equal(t, "Zeebo", platforms[1].Name)

	counts, err := db.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"platform": 2, "genre": 1}, counts)

	empty, err := db.List(ctx, "video")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFromConverters(t *testing.T) {
	tests := []struct {
		name     string
		convert  func() (Row, error)
		resource string
		id       int
	}{
		{"franchise", func() (Row, error) { return FromFranchise(giantbomb.Franchise{ID: 3, Name: "Mario"}) }, "franchise", 3},
		{"video", func() (Row, error) { return FromVideo(giantbomb.VideoSummary{ID: 4, Name: "Quick Look"}) }, "video", 4},
		{"search", func() (Row, error) {
			return FromSearchResult(giantbomb.ResourceGame, giantbomb.SearchResult{ID: 5, Name: "Doom"})
		}, "game", 5},
		{"entity", func() (Row, error) {
			return FromEntity(giantbomb.ResourceCompany, giantbomb.Entity{ID: 6, Name: "Id Software"})
		}, "company", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := tt.convert()
			require.NoError(t, err)
			assert.Equal(t, tt.resource, row.Resource)
			assert.Equal(t, tt.id, row.ID)
			assert.NotEmpty(t, row.Payload)
		})
	}
}

func TestLinkGamePlatforms(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.LinkGamePlatforms(ctx, 42, []int{3, 1, 3}))
	ids, err := db.GamePlatforms(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids)

	require.NoError(t, db.LinkGamePlatforms(ctx, 42, []int{7}))
	ids, err = db.GamePlatforms(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, ids, "links should be replaced")
}

func TestUpdateCatalogMetrics(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	row, err := FromGenre(giantbomb.Genre{ID: 1, Name: "Puzzle"})
	require.NoError(t, err)
	require.NoError(t, db.Upsert(ctx, row))

	require.NoError(t, metrics.UpdateCatalogMetrics(db.Conn()))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CatalogRecords.WithLabelValues("genre")))
}
