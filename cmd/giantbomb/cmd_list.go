package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ryanm101/giantbomb"
)

// listRow is the table form of any listed record.
type listRow struct {
	ID   int
	Name string
	Kind string
	Deck string
}

func handleListCommand(ctx context.Context, r giantbomb.Resource, args []string) int {
	opts, rest, err := parseListFlags(args)
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}
	if len(rest) > 0 {
		PrintError("Unknown arguments: %s\n", strings.Join(rest, " "))
		return 1
	}

	client, err := newClient()
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}

	var (
		records any
		rows    []listRow
	)
	switch r {
	case giantbomb.ResourceGame:
		var games []giantbomb.SearchResult
		games, err = client.Games(ctx, opts)
		records = games
		for _, g := range games {
			rows = append(rows, listRow{g.ID, g.Name, g.ResourceType, g.Deck})
		}
	case giantbomb.ResourcePlatform:
		var platforms []giantbomb.Platform
		platforms, err = client.Platforms(ctx, opts)
		records = platforms
		for _, p := range platforms {
			rows = append(rows, listRow{p.ID, p.Name, p.Abbreviation, p.Deck})
		}
	case giantbomb.ResourceFranchise:
		var franchises []giantbomb.Franchise
		franchises, err = client.Franchises(ctx, opts)
		records = franchises
		for _, f := range franchises {
			rows = append(rows, listRow{f.ID, f.Name, "", f.Deck})
		}
	case giantbomb.ResourceGenre:
		var genres []giantbomb.Genre
		genres, err = client.Genres(ctx, opts)
		records = genres
		for _, g := range genres {
			rows = append(rows, listRow{g.ID, g.Name, "", ""})
		}
	case giantbomb.ResourceVideo:
		var videos []giantbomb.VideoSummary
		videos, err = client.Videos(ctx, opts)
		records = videos
		for _, v := range videos {
			rows = append(rows, listRow{v.ID, v.Name, v.PublishDate, v.Deck})
		}
	default:
		var entities []giantbomb.Entity
		entities, err = client.List(ctx, r, opts)
		records = entities
		for _, e := range entities {
			rows = append(rows, listRow{e.ID, e.Name, "", e.Deck})
		}
	}
	if err != nil {
		PrintError("Error listing %s: %v\n", r.ListName(), err)
		return 1
	}

	if outputCfg.JSON {
		PrintResult(records)
		return 0
	}
	printListRows(rows)
	return 0
}

func printListRows(rows []listRow) {
	if len(rows) == 0 {
		PrintInfo("No results.\n")
		return
	}
	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{strconv.Itoa(r.ID), truncate(r.Name, 40), r.Kind, truncate(r.Deck, 60)}
	}
	PrintTable([]string{"ID", "NAME", "INFO", "DECK"}, table)
}

func handleSearchCommand(ctx context.Context, args []string) int {
	opts, words, err := parseSearchFlags(args)
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}
	if len(words) == 0 {
		fmt.Println("Usage: giantbomb search <query> [--resources=game,franchise] [--limit=N] [--offset=N]")
		return 1
	}

	client, err := newClient()
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}

	results, err := client.Search(ctx, strings.Join(words, " "), opts)
	if err != nil {
		PrintError("Error searching: %v\n", err)
		return 1
	}

	if outputCfg.JSON {
		PrintResult(results)
		return 0
	}
	rows := make([]listRow, len(results))
	for i, s := range results {
		rows[i] = listRow{s.ID, s.Name, s.ResourceType, s.Deck}
	}
	printListRows(rows)
	return 0
}

func handleTypesCommand(ctx context.Context, args []string) int {
	opts, rest, err := parseListFlags(args)
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}
	if len(rest) > 0 {
		PrintError("Unknown arguments: %s\n", strings.Join(rest, " "))
		return 1
	}

	client, err := newClient()
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}

	types, err := client.Types(ctx, opts)
	if err != nil {
		PrintError("Error listing types: %v\n", err)
		return 1
	}

	printTypes(types)
	return 0
}

func printTypes(types []giantbomb.ResourceType) {
	if outputCfg.JSON {
		PrintResult(types)
		return
	}
	rows := make([][]string, len(types))
	for i, t := range types {
		rows[i] = []string{strconv.Itoa(t.ID), t.DetailResourceName, t.ListResourceName}
	}
	PrintTable([]string{"ID", "DETAIL", "LIST"}, rows)
}
