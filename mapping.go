package giantbomb

import (
	"encoding/json"
	"math"
	"strconv"
)

// raw is one decoded JSON object. Accessors never fail: a missing or
// mistyped key yields the zero value.
type raw map[string]any

func asRaw(v any) raw {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return raw(m)
}

func (r raw) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

func (r raw) integer(key string) int {
	switch v := r[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(math.Trunc(f))
		}
	case float64:
		return int(math.Trunc(v))
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func (r raw) object(key string) raw {
	return asRaw(r[key])
}

// list returns the object elements of key. Anything that is not an array
// (null, a scalar, an object) is treated as an empty list.
func (r raw) list(key string) []raw {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]raw, 0, len(items))
	for _, item := range items {
		if m := asRaw(item); m != nil {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// mapList applies fn to every object element of key.
func mapList[T any](r raw, key string, fn func(raw) T) []T {
	items := r.list(key)
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

func mapImage(r raw) *Image {
	if r == nil {
		return nil
	}
	img := mapImageValue(r)
	return &img
}

func mapImageValue(r raw) Image {
	return Image{
		IconURL:   r.str("icon_url"),
		TinyURL:   r.str("tiny_url"),
		SmallURL:  r.str("small_url"),
		MediumURL: r.str("medium_url"),
		ThumbURL:  r.str("thumb_url"),
		ScreenURL: r.str("screen_url"),
		SuperURL:  r.str("super_url"),
		Tags:      r.str("tags"),
	}
}

func mapRef(r raw) Ref {
	return Ref{
		ID:            r.integer("id"),
		Name:          r.str("name"),
		APIDetailURL:  r.str("api_detail_url"),
		SiteDetailURL: r.str("site_detail_url"),
	}
}

func mapPlatform(r raw) Platform {
	return Platform{
		ID:            r.integer("id"),
		Name:          r.str("name"),
		Abbreviation:  r.str("abbreviation"),
		Deck:          r.str("deck"),
		APIDetailURL:  r.str("api_detail_url"),
		SiteDetailURL: r.str("site_detail_url"),
		Image:         mapImage(r.object("image")),
	}
}

func mapFranchise(r raw) Franchise {
	return Franchise{
		ID:            r.integer("id"),
		Name:          r.str("name"),
		Deck:          r.str("deck"),
		APIDetailURL:  r.str("api_detail_url"),
		SiteDetailURL: r.str("site_detail_url"),
		Image:         mapImage(r.object("image")),
	}
}

func mapGenre(r raw) Genre {
	return Genre{
		ID:            r.integer("id"),
		Name:          r.str("name"),
		APIDetailURL:  r.str("api_detail_url"),
		SiteDetailURL: r.str("site_detail_url"),
	}
}

func mapVideoSummary(r raw) VideoSummary {
	return VideoSummary{
		ID:            r.integer("id"),
		Name:          r.str("name"),
		Deck:          r.str("deck"),
		Image:         mapImage(r.object("image")),
		URL:           r.str("url"),
		PublishDate:   r.str("publish_date"),
		APIDetailURL:  r.str("api_detail_url"),
		SiteDetailURL: r.str("site_detail_url"),
	}
}

func mapVideo(r raw) Video {
	v := Video{
		VideoSummary:  mapVideoSummary(r),
		HighURL:       r.str("high_url"),
		LowURL:        r.str("low_url"),
		HDURL:         r.str("hd_url"),
		LengthSeconds: r.integer("length_seconds"),
		User:          r.str("user"),
		VideoType:     r.str("video_type"),
	}
	// newer payloads nest the type as an object
	if vt := r.object("video_type"); vt != nil {
		v.VideoType = vt.str("name")
	}
	return v
}

func mapGame(r raw) Game {
	return Game{
		ID:                  r.integer("id"),
		Name:                r.str("name"),
		Deck:                r.str("deck"),
		Description:         r.str("description"),
		Platforms:           mapList(r, "platforms", mapPlatform),
		Developers:          mapList(r, "developers", mapRef),
		Publishers:          mapList(r, "publishers", mapRef),
		Franchises:          mapList(r, "franchises", mapRef),
		Image:               mapImage(r.object("image")),
		Images:              mapList(r, "images", mapImageValue),
		Genres:              mapList(r, "genres", mapGenre),
		OriginalReleaseDate: r.str("original_release_date"),
		Videos:              mapList(r, "videos", mapVideoSummary),
		APIDetailURL:        r.str("api_detail_url"),
		SiteDetailURL:       r.str("site_detail_url"),
		DateAdded:           r.str("date_added"),
		DateLastUpdated:     r.str("date_last_updated"),
	}
}

func mapSearchResult(r raw) SearchResult {
	return SearchResult{
		ID:            r.integer("id"),
		Name:          r.str("name"),
		Deck:          r.str("deck"),
		ResourceType:  r.str("resource_type"),
		APIDetailURL:  r.str("api_detail_url"),
		SiteDetailURL: r.str("site_detail_url"),
		Image:         mapImage(r.object("image")),
	}
}

func mapEntity(r raw) Entity {
	return Entity{
		ID:              r.integer("id"),
		Name:            r.str("name"),
		Deck:            r.str("deck"),
		Description:     r.str("description"),
		APIDetailURL:    r.str("api_detail_url"),
		SiteDetailURL:   r.str("site_detail_url"),
		Image:           mapImage(r.object("image")),
		DateAdded:       r.str("date_added"),
		DateLastUpdated: r.str("date_last_updated"),
		Fields:          map[string]any(r),
	}
}

func mapResourceType(r raw) ResourceType {
	return ResourceType{
		ID:                 r.integer("id"),
		DetailResourceName: r.str("detail_resource_name"),
		ListResourceName:   r.str("list_resource_name"),
	}
}
