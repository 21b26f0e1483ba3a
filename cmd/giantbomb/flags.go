package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ryanm101/giantbomb"
)

// parseID parses a positive record id.
func parseID(s string) (giantbomb.ID, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid id: %q", s)
	}
	return giantbomb.ID(n), nil
}

// parseListFlags reads --name=value list options. Arguments that are not
// list options are returned in rest.
func parseListFlags(args []string) (opts giantbomb.ListOptions, rest []string, err error) {
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || !strings.HasPrefix(name, "--") {
			rest = append(rest, arg)
			continue
		}

		switch name {
		case "--limit":
			opts.Limit, err = strconv.Atoi(value)
		case "--offset":
			opts.Offset, err = strconv.Atoi(value)
		case "--game":
			opts.Game, err = strconv.Atoi(value)
		case "--sort":
			opts.Sort = value
		case "--fields":
			opts.FieldList = splitList(value)
		case "--filter":
			opts.Filter, err = parseFilter(value)
		case "--platforms":
			opts.Platforms, err = parseInts(value)
		default:
			rest = append(rest, arg)
		}
		if err != nil {
			return opts, nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return opts, rest, nil
}

// parseSearchFlags reads search options and returns the query words.
func parseSearchFlags(args []string) (opts giantbomb.SearchOptions, query []string, err error) {
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || !strings.HasPrefix(name, "--") {
			query = append(query, arg)
			continue
		}

		switch name {
		case "--limit":
			opts.Limit, err = strconv.Atoi(value)
		case "--offset":
			opts.Offset, err = strconv.Atoi(value)
		case "--filter":
			opts.Filter, err = parseFilter(value)
		case "--resources":
			for _, s := range splitList(value) {
				r, ok := giantbomb.ParseResource(s)
				if !ok {
					return opts, nil, fmt.Errorf("unknown resource: %s", s)
				}
				opts.Resources = append(opts.Resources, r)
			}
		default:
			return opts, nil, fmt.Errorf("unknown option: %s", name)
		}
		if err != nil {
			return opts, nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return opts, query, nil
}

// parseFilter parses "k:v,k2:v2".
func parseFilter(s string) (map[string]string, error) {
	filter := make(map[string]string)
	for _, pair := range splitList(s) {
		k, v, ok := strings.Cut(pair, ":")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected field:value, got %q", pair)
		}
		filter[k] = v
	}
	return filter, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
