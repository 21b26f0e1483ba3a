package main

import (
	"context"
	"sort"
	"strconv"

	"github.com/ryanm101/giantbomb"
)

func handleCatalogCommand(ctx context.Context, args []string) int {
	database, err := openCatalog(ctx, "")
	if err != nil {
		PrintError("Error opening catalog: %v\n", err)
		return 1
	}
	defer func() { _ = database.Close() }()

	if len(args) == 0 {
		counts, err := database.Counts(ctx)
		if err != nil {
			PrintError("Error reading catalog: %v\n", err)
			return 1
		}
		if outputCfg.JSON {
			PrintResult(counts)
			return 0
		}
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		rows := make([][]string, len(names))
		for i, name := range names {
			rows[i] = []string{name, strconv.Itoa(counts[name])}
		}
		PrintTable([]string{"RESOURCE", "RECORDS"}, rows)
		return 0
	}

	r, ok := giantbomb.ParseResource(args[0])
	if !ok {
		PrintError("Unknown resource: %s\n", args[0])
		return 1
	}
	records, err := database.List(ctx, string(r))
	if err != nil {
		PrintError("Error reading catalog: %v\n", err)
		return 1
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{strconv.Itoa(rec.ID), truncate(rec.Name, 40), rec.FetchedAt, rec.SiteDetailURL}
	}
	PrintTable([]string{"ID", "NAME", "FETCHED", "URL"}, rows)
	return 0
}
