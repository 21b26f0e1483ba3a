package giantbomb

import (
	"fmt"
	"slices"
)

// ListOptions narrows a list request. Zero values are not sent.
type ListOptions struct {
	FieldList []string          // field_list: only return these fields
	Limit     int               // limit: page size, the API caps it at 100
	Offset    int               // offset: records to skip
	Sort      string            // sort: "field:asc" or "field:desc"
	Filter    map[string]string // filter: field -> value
	Platforms []int             // platforms: games and releases only
	Game      int               // game: user_reviews only
}

// params validates the options against the resource's list endpoint.
func (o ListOptions) params(r Resource) (Params, error) {
	return o.paramsFor(r, endpoints[r].listOpts)
}

// paramsFor validates the options against an explicit allow-list; r only
// names the endpoint in errors.
func (o ListOptions) paramsFor(r Resource, allowed []string) (Params, error) {
	if o.Limit < 0 || o.Offset < 0 || o.Game < 0 {
		return nil, fmt.Errorf("%s: %w: negative limit, offset or game", r, ErrInvalidArgument)
	}

	p := Params{}
	set := func(name string, value any) error {
		if !slices.Contains(allowed, name) {
			return &OptionError{Resource: r, Option: name}
		}
		p[name] = value
		return nil
	}

	if len(o.FieldList) > 0 {
		if err := set(OptFieldList, o.FieldList); err != nil {
			return nil, err
		}
	}
	if o.Limit > 0 {
		if err := set(OptLimit, o.Limit); err != nil {
			return nil, err
		}
	}
	if o.Offset > 0 {
		if err := set(OptOffset, o.Offset); err != nil {
			return nil, err
		}
	}
	if o.Sort != "" {
		if err := set(OptSort, o.Sort); err != nil {
			return nil, err
		}
	}
	if len(o.Filter) > 0 {
		if err := set(OptFilter, o.Filter); err != nil {
			return nil, err
		}
	}
	if len(o.Platforms) > 0 {
		if err := set(OptPlatforms, o.Platforms); err != nil {
			return nil, err
		}
	}
	if o.Game > 0 {
		if err := set(OptGame, o.Game); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SearchOptions narrows a full-text search.
type SearchOptions struct {
	Resources []Resource        // resources: restrict result types
	Filter    map[string]string // filter
	Limit     int
	Offset    int // always sent, defaults to 0
}

func (o SearchOptions) params(query string) (Params, error) {
	if o.Limit < 0 || o.Offset < 0 {
		return nil, fmt.Errorf("search: %w: negative limit or offset", ErrInvalidArgument)
	}
	p := Params{
		"query":   encoded(escapeSearchQuery(query)),
		OptOffset: o.Offset,
	}
	if len(o.Resources) > 0 {
		names := make([]string, len(o.Resources))
		for i, r := range o.Resources {
			names[i] = string(r)
		}
		p["resources"] = names
	}
	if len(o.Filter) > 0 {
		p[OptFilter] = o.Filter
	}
	if o.Limit > 0 {
		p[OptLimit] = o.Limit
	}
	return p, nil
}
