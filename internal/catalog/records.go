package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ryanm101/giantbomb"
)

// ErrNotFound is returned when a record is not in the catalog.
var ErrNotFound = errors.New("record not found")

// Row is one stored record. Payload holds the record as JSON.
type Row struct {
	Resource      string
	ID            int
	Name          string
	Deck          string
	APIDetailURL  string
	SiteDetailURL string
	ImageURL      string
	Payload       []byte
	FetchedAt     string
}

func newRow(resource giantbomb.Resource, id int, name, deck, apiURL, siteURL string, img *giantbomb.Image, record any) (Row, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return Row{}, fmt.Errorf("encode %s %d: %w", resource, id, err)
	}
	return Row{
		Resource:      string(resource),
		ID:            id,
		Name:          name,
		Deck:          deck,
		APIDetailURL:  apiURL,
		SiteDetailURL: siteURL,
		ImageURL:      img.Largest(),
		Payload:       payload,
	}, nil
}

func FromGame(g giantbomb.Game) (Row, error) {
	return newRow(giantbomb.ResourceGame, g.ID, g.Name, g.Deck, g.APIDetailURL, g.SiteDetailURL, g.Image, g)
}

func FromPlatform(p giantbomb.Platform) (Row, error) {
	return newRow(giantbomb.ResourcePlatform, p.ID, p.Name, p.Deck, p.APIDetailURL, p.SiteDetailURL, p.Image, p)
}

func FromFranchise(f giantbomb.Franchise) (Row, error) {
	return newRow(giantbomb.ResourceFranchise, f.ID, f.Name, f.Deck, f.APIDetailURL, f.SiteDetailURL, f.Image, f)
}

func FromGenre(g giantbomb.Genre) (Row, error) {
	return newRow(giantbomb.ResourceGenre, g.ID, g.Name, "", g.APIDetailURL, g.SiteDetailURL, nil, g)
}

func FromVideo(v giantbomb.VideoSummary) (Row, error) {
	return newRow(giantbomb.ResourceVideo, v.ID, v.Name, v.Deck, v.APIDetailURL, v.SiteDetailURL, v.Image, v)
}

// FromSearchResult stores a search hit or game listing entry under resource.
func FromSearchResult(resource giantbomb.Resource, s giantbomb.SearchResult) (Row, error) {
	return newRow(resource, s.ID, s.Name, s.Deck, s.APIDetailURL, s.SiteDetailURL, s.Image, s)
}

func FromEntity(resource giantbomb.Resource, e giantbomb.Entity) (Row, error) {
	return newRow(resource, e.ID, e.Name, e.Deck, e.APIDetailURL, e.SiteDetailURL, e.Image, e)
}

// Upsert inserts or replaces rows in one transaction.
func (db *DB) Upsert(ctx context.Context, rows ...Row) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO records (resource, id, name, deck, api_detail_url, site_detail_url, image_url, payload, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(resource, id) DO UPDATE SET
			name = excluded.name,
			deck = excluded.deck,
			api_detail_url = excluded.api_detail_url,
			site_detail_url = excluded.site_detail_url,
			image_url = excluded.image_url,
			payload = excluded.payload,
			fetched_at = CURRENT_TIMESTAMP
	`
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, query, r.Resource, r.ID, r.Name, r.Deck, r.APIDetailURL, r.SiteDetailURL, r.ImageURL, string(r.Payload)); err != nil {
			return fmt.Errorf("failed to save %s %d: %w", r.Resource, r.ID, err)
		}
	}

	return tx.Commit()
}

// Get returns one stored record.
func (db *DB) Get(ctx context.Context, resource string, id int) (*Row, error) {
	query := `
		SELECT resource, id, name, deck, api_detail_url, site_detail_url, image_url, payload, fetched_at
		FROM records WHERE resource = ? AND id = ?
	`
	r, err := scanRow(db.conn.QueryRowContext(ctx, query, resource, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %d: %w", resource, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return r, nil
}

// List returns every stored record of resource ordered by name.
func (db *DB) List(ctx context.Context, resource string) ([]Row, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT resource, id, name, deck, api_detail_url, site_detail_url, image_url, payload, fetched_at
		FROM records WHERE resource = ?
		ORDER BY name, id
	`, resource)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Row
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Counts returns the number of stored records per resource.
func (db *DB) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT resource, COUNT(*) FROM records GROUP BY resource")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var resource string
		var n int
		if err := rows.Scan(&resource, &n); err != nil {
			return nil, err
		}
		counts[resource] = n
	}
	return counts, rows.Err()
}

// LinkGamePlatforms replaces the platform links of a game.
func (db *DB) LinkGamePlatforms(ctx context.Context, gameID int, platformIDs []int) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM game_platforms WHERE game_id = ?", gameID); err != nil {
		return err
	}
	for _, pid := range platformIDs {
		if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO game_platforms (game_id, platform_id) VALUES (?, ?)", gameID, pid); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GamePlatforms returns the platform ids linked to a game.
func (db *DB) GamePlatforms(ctx context.Context, gameID int) ([]int, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT platform_id FROM game_platforms WHERE game_id = ? ORDER BY platform_id", gameID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (*Row, error) {
	var r Row
	var name, deck, apiURL, siteURL, imageURL sql.NullString
	var payload string
	if err := s.Scan(&r.Resource, &r.ID, &name, &deck, &apiURL, &siteURL, &imageURL, &payload, &r.FetchedAt); err != nil {
		return nil, err
	}
	r.Name = name.String
	r.Deck = deck.String
	r.APIDetailURL = apiURL.String
	r.SiteDetailURL = siteURL.String
	r.ImageURL = imageURL.String
	r.Payload = []byte(payload)
	return &r, nil
}
