package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ryanm101/giantbomb"
)

func handleFetchCommand(ctx context.Context, r giantbomb.Resource, args []string) int {
	if len(args) < 1 {
		fmt.Printf("Usage: giantbomb %s <id>\n", r)
		return 1
	}
	id, err := parseID(args[0])
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}

	client, err := newClient()
	if err != nil {
		PrintError("Error: %v\n", err)
		return 1
	}

	var record any
	switch r {
	case giantbomb.ResourceGame:
		record, err = client.Game(ctx, id)
	case giantbomb.ResourcePlatform:
		record, err = client.Platform(ctx, id)
	case giantbomb.ResourceFranchise:
		record, err = client.Franchise(ctx, id)
	case giantbomb.ResourceGenre:
		record, err = client.Genre(ctx, id)
	case giantbomb.ResourceVideo:
		record, err = client.Video(ctx, id)
	default:
		record, err = client.Get(ctx, r, id)
	}
	if err != nil {
		PrintError("Error fetching %s %d: %v\n", r, id, err)
		return 1
	}

	printRecord(record)
	return 0
}

func handleGetCommand(ctx context.Context, args []string) int {
	if len(args) < 2 {
		fmt.Println("Usage: giantbomb get <resource> <id>")
		return 1
	}
	r, ok := giantbomb.ParseResource(args[0])
	if !ok || !r.HasDetail() {
		PrintError("Unknown resource or no single-item endpoint: %s\n", args[0])
		return 1
	}
	return handleFetchCommand(ctx, r, args[1:])
}

// printRecord prints a record's summary, or the whole record with --json.
func printRecord(record any) {
	if outputCfg.JSON {
		PrintResult(record)
		return
	}

	switch v := record.(type) {
	case giantbomb.Game:
		fmt.Println(v)
		printField("Deck", v.Deck)
		printField("Released", v.OriginalReleaseDate)
		printRefs("Platforms", v.Platforms)
		printRefs("Developers", v.Developers)
		printRefs("Publishers", v.Publishers)
		printRefs("Franchises", v.Franchises)
		printRefs("Genres", v.Genres)
		printField("Videos", countField(len(v.Videos)))
		printField("URL", v.SiteDetailURL)
	case giantbomb.Video:
		fmt.Println(v)
		printField("Deck", v.Deck)
		printField("Type", v.VideoType)
		printField("Published", v.PublishDate)
		printField("Length", countField(v.LengthSeconds))
		printField("HD", v.HDURL)
		printField("URL", v.SiteDetailURL)
	case giantbomb.Platform:
		fmt.Println(v)
		printField("Abbreviation", v.Abbreviation)
		printField("Deck", v.Deck)
		printField("URL", v.SiteDetailURL)
	case giantbomb.Entity:
		fmt.Println(v)
		printField("Deck", v.Deck)
		printField("URL", v.SiteDetailURL)
	default:
		PrintResult(record)
	}
}

func printField(label, value string) {
	if value != "" {
		fmt.Printf("  %-12s %s\n", label+":", value)
	}
}

func printRefs[T fmt.Stringer](label string, refs []T) {
	if len(refs) == 0 {
		return
	}
	fmt.Printf("  %-12s", label+":")
	for i, r := range refs {
		if i > 0 {
			fmt.Print(",")
		}
		fmt.Print(" ", r.String())
	}
	fmt.Println()
}

func countField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
