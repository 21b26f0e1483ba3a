package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/ryanm101/giantbomb"
	"github.com/ryanm101/giantbomb/internal/catalog"
	"github.com/ryanm101/giantbomb/internal/logging"
	"github.com/ryanm101/giantbomb/internal/metrics"
)

const exportPageSize = 100

// exportOptions controls one export run.
type exportOptions struct {
	list    giantbomb.ListOptions
	pages   int
	dbPath  string
	details bool
}

func parseExportFlags(args []string) (exportOptions, []string, error) {
	list, rest, err := parseListFlags(args)
	if err != nil {
		return exportOptions{}, nil, err
	}
	opts := exportOptions{list: list}
	if opts.list.Limit == 0 {
		opts.list.Limit = exportPageSize
	}

	var positional []string
	for _, arg := range rest {
		switch {
		case strings.HasPrefix(arg, "--pages="):
			opts.pages, err = strconv.Atoi(strings.TrimPrefix(arg, "--pages="))
			if err != nil || opts.pages < 0 {
				return exportOptions{}, nil, fmt.Errorf("--pages: invalid value %q", arg)
			}
		case strings.HasPrefix(arg, "--db="):
			opts.dbPath = strings.TrimPrefix(arg, "--db=")
		case arg == "--details":
			opts.details = true
		default:
			positional = append(positional, arg)
		}
	}
	return opts, positional, nil
}

func handleExportCommand(ctx context.Context, args []string) int {
	opts, positional, err := parseExportFlags(args)
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}
	if len(positional) != 1 {
		fmt.Println("Usage: giantbomb export <resource> [--pages=N] [--limit=N] [--details] [--db=path] [list options]")
		return 1
	}
	r, ok := giantbomb.ParseResource(positional[0])
	if !ok || !r.HasList() {
		PrintError("Unknown resource or no list endpoint: %s\n", positional[0])
		return 1
	}

	client, err := newClient()
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}

	database, err := openCatalog(ctx, opts.dbPath)
	if err != nil {
		PrintError("Error opening catalog: %v\n", err)
		return 1
	}
	defer func() { _ = database.Close() }()

	var bar *progressbar.ProgressBar
	if !outputCfg.Quiet && !outputCfg.JSON {
		steps := int64(opts.pages)
		if steps == 0 {
			steps = -1
		}
		bar = progressbar.Default(steps, "Exporting "+r.ListName())
	}

	exp := &exporter{client: client, db: database, details: opts.details}
	total := 0
	start := opts.list.Offset
	for page := 0; opts.pages == 0 || page < opts.pages; page++ {
		pageOpts := opts.list
		pageOpts.Offset = start + page*pageOpts.Limit

		n, err := exp.page(ctx, r, pageOpts)
		if err != nil {
			if bar != nil {
				_ = bar.Finish()
			}
			PrintError("Error exporting %s at offset %d: %v\n", r.ListName(), pageOpts.Offset, err)
			return 1
		}
		total += n
		if bar != nil {
			_ = bar.Add(1)
		}
		if n < pageOpts.Limit {
			break
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if err := metrics.UpdateCatalogMetrics(database.Conn()); err != nil {
		logging.Warn("failed to update catalog metrics", "error", err)
	}

	if outputCfg.JSON {
		PrintResult(map[string]any{"resource": r, "exported": total, "db": database.Path()})
	} else {
		PrintInfo("\nExported %d %s to %s\n", total, r.ListName(), database.Path())
	}
	return 0
}

// exporter copies list pages into the catalog.
type exporter struct {
	client  *giantbomb.Client
	db      *catalog.DB
	details bool
}

// page exports one page and returns the number of records the API returned.
func (e *exporter) page(ctx context.Context, r giantbomb.Resource, opts giantbomb.ListOptions) (int, error) {
	var (
		rows []catalog.Row
		n    int
		err  error
	)

	switch r {
	case giantbomb.ResourceGame:
		var games []giantbomb.SearchResult
		if games, err = e.client.Games(ctx, opts); err != nil {
			return 0, err
		}
		n = len(games)
		if e.details {
			return n, e.gameDetails(ctx, games)
		}
		rows, err = convert(games, func(s giantbomb.SearchResult) (catalog.Row, error) {
			return catalog.FromSearchResult(giantbomb.ResourceGame, s)
		})
	case giantbomb.ResourcePlatform:
		var platforms []giantbomb.Platform
		if platforms, err = e.client.Platforms(ctx, opts); err != nil {
			return 0, err
		}
		n = len(platforms)
		rows, err = convert(platforms, catalog.FromPlatform)
	case giantbomb.ResourceFranchise:
		var franchises []giantbomb.Franchise
		if franchises, err = e.client.Franchises(ctx, opts); err != nil {
			return 0, err
		}
		n = len(franchises)
		rows, err = convert(franchises, catalog.FromFranchise)
	case giantbomb.ResourceGenre:
		var genres []giantbomb.Genre
		if genres, err = e.client.Genres(ctx, opts); err != nil {
			return 0, err
		}
		n = len(genres)
		rows, err = convert(genres, catalog.FromGenre)
	case giantbomb.ResourceVideo:
		var videos []giantbomb.VideoSummary
		if videos, err = e.client.Videos(ctx, opts); err != nil {
			return 0, err
		}
		n = len(videos)
		rows, err = convert(videos, catalog.FromVideo)
	default:
		var entities []giantbomb.Entity
		if entities, err = e.client.List(ctx, r, opts); err != nil {
			return 0, err
		}
		n = len(entities)
		rows, err = convert(entities, func(en giantbomb.Entity) (catalog.Row, error) {
			return catalog.FromEntity(r, en)
		})
	}
	if err != nil {
		return 0, err
	}

	return n, e.db.Upsert(ctx, rows...)
}

// gameDetails fetches every listed game in full and records its platforms.
func (e *exporter) gameDetails(ctx context.Context, games []giantbomb.SearchResult) error {
	for _, s := range games {
		game, err := e.client.Game(ctx, s)
		if err != nil {
			return err
		}
		row, err := catalog.FromGame(game)
		if err != nil {
			return err
		}
		if err := e.db.Upsert(ctx, row); err != nil {
			return err
		}

		ids := make([]int, len(game.Platforms))
		for i, p := range game.Platforms {
			ids[i] = p.ID
		}
		if err := e.db.LinkGamePlatforms(ctx, game.ID, ids); err != nil {
			return err
		}
	}
	return nil
}

func convert[T any](records []T, fn func(T) (catalog.Row, error)) ([]catalog.Row, error) {
	rows := make([]catalog.Row, 0, len(records))
	for _, rec := range records {
		row, err := fn(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
