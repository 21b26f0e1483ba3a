package giantbomb

import (
	"fmt"
	"time"
)

// DateLayout is the format used by every date field the API returns.
const DateLayout = "2006-01-02 15:04:05"

// Identifier is anything that can name a remote object by id. Every record
// type implements it, so a fetched record can be passed back to the client.
type Identifier interface {
	GiantBombID() int
}

// ID is a bare numeric identifier.
type ID int

func (id ID) GiantBombID() int { return int(id) }

// Image is the set of URLs the API publishes for one picture.
type Image struct {
	IconURL   string `json:"icon_url,omitempty"`
	TinyURL   string `json:"tiny_url,omitempty"`
	SmallURL  string `json:"small_url,omitempty"`
	MediumURL string `json:"medium_url,omitempty"`
	ThumbURL  string `json:"thumb_url,omitempty"`
	ScreenURL string `json:"screen_url,omitempty"`
	SuperURL  string `json:"super_url,omitempty"`
	Tags      string `json:"tags,omitempty"`
}

// Largest returns the biggest URL present, or "" if none are set.
func (i *Image) Largest() string {
	if i == nil {
		return ""
	}
	for _, u := range []string{i.SuperURL, i.ScreenURL, i.MediumURL, i.SmallURL, i.ThumbURL, i.TinyURL, i.IconURL} {
		if u != "" {
			return u
		}
	}
	return ""
}

// Ref is a short reference to another object, as embedded in a game.
type Ref struct {
	ID            int    `json:"id"`
	Name          string `json:"name,omitempty"`
	APIDetailURL  string `json:"api_detail_url,omitempty"`
	SiteDetailURL string `json:"site_detail_url,omitempty"`
}

func (r Ref) GiantBombID() int { return r.ID }
func (r Ref) String() string   { return repr(r.ID, r.Name) }

type Platform struct {
	ID            int    `json:"id"`
	Name          string `json:"name,omitempty"`
	Abbreviation  string `json:"abbreviation,omitempty"`
	Deck          string `json:"deck,omitempty"`
	APIDetailURL  string `json:"api_detail_url,omitempty"`
	SiteDetailURL string `json:"site_detail_url,omitempty"`
	Image         *Image `json:"image,omitempty"`
}

func (p Platform) GiantBombID() int { return p.ID }
func (p Platform) String() string   { return repr(p.ID, p.Name) }

type Franchise struct {
	ID            int    `json:"id"`
	Name          string `json:"name,omitempty"`
	Deck          string `json:"deck,omitempty"`
	APIDetailURL  string `json:"api_detail_url,omitempty"`
	SiteDetailURL string `json:"site_detail_url,omitempty"`
	Image         *Image `json:"image,omitempty"`
}

func (f Franchise) GiantBombID() int { return f.ID }
func (f Franchise) String() string   { return repr(f.ID, f.Name) }

type Genre struct {
	ID            int    `json:"id"`
	Name          string `json:"name,omitempty"`
	APIDetailURL  string `json:"api_detail_url,omitempty"`
	SiteDetailURL string `json:"site_detail_url,omitempty"`
}

func (g Genre) GiantBombID() int { return g.ID }
func (g Genre) String() string   { return repr(g.ID, g.Name) }

// VideoSummary is the short form of a video, used in listings and games.
type VideoSummary struct {
	ID            int    `json:"id"`
	Name          string `json:"name,omitempty"`
	Deck          string `json:"deck,omitempty"`
	Image         *Image `json:"image,omitempty"`
	URL           string `json:"url,omitempty"`
	PublishDate   string `json:"publish_date,omitempty"`
	APIDetailURL  string `json:"api_detail_url,omitempty"`
	SiteDetailURL string `json:"site_detail_url,omitempty"`
}

func (v VideoSummary) GiantBombID() int { return v.ID }
func (v VideoSummary) String() string   { return repr(v.ID, v.Name) }

// Video is the full video record.
type Video struct {
	VideoSummary
	HighURL       string `json:"high_url,omitempty"`
	LowURL        string `json:"low_url,omitempty"`
	HDURL         string `json:"hd_url,omitempty"`
	LengthSeconds int    `json:"length_seconds,omitempty"`
	User          string `json:"user,omitempty"`
	VideoType     string `json:"video_type,omitempty"`
}

// Published parses PublishDate.
func (v VideoSummary) Published() (time.Time, bool) {
	return ParseDate(v.PublishDate)
}

type Game struct {
	ID                  int            `json:"id"`
	Name                string         `json:"name,omitempty"`
	Deck                string         `json:"deck,omitempty"`
	Description         string         `json:"description,omitempty"`
	Platforms           []Platform     `json:"platforms,omitempty"`
	Developers          []Ref          `json:"developers,omitempty"`
	Publishers          []Ref          `json:"publishers,omitempty"`
	Franchises          []Ref          `json:"franchises,omitempty"`
	Image               *Image         `json:"image,omitempty"`
	Images              []Image        `json:"images,omitempty"`
	Genres              []Genre        `json:"genres,omitempty"`
	OriginalReleaseDate string         `json:"original_release_date,omitempty"`
	Videos              []VideoSummary `json:"videos,omitempty"`
	APIDetailURL        string         `json:"api_detail_url,omitempty"`
	SiteDetailURL       string         `json:"site_detail_url,omitempty"`
	DateAdded           string         `json:"date_added,omitempty"`
	DateLastUpdated     string         `json:"date_last_updated,omitempty"`
}

func (g Game) GiantBombID() int { return g.ID }
func (g Game) String() string   { return repr(g.ID, g.Name) }

// ReleaseDate parses OriginalReleaseDate.
func (g Game) ReleaseDate() (time.Time, bool) {
	return ParseDate(g.OriginalReleaseDate)
}

// SearchResult is the minimal projection returned by search and game listings.
type SearchResult struct {
	ID            int    `json:"id"`
	Name          string `json:"name,omitempty"`
	Deck          string `json:"deck,omitempty"`
	ResourceType  string `json:"resource_type,omitempty"`
	APIDetailURL  string `json:"api_detail_url,omitempty"`
	SiteDetailURL string `json:"site_detail_url,omitempty"`
	Image         *Image `json:"image,omitempty"`
}

func (s SearchResult) GiantBombID() int { return s.ID }
func (s SearchResult) String() string   { return repr(s.ID, s.Name) }

// Entity is the generic record for resources without a dedicated type.
// Fields keeps the whole upstream record for resource-specific keys.
type Entity struct {
	ID              int            `json:"id"`
	Name            string         `json:"name,omitempty"`
	Deck            string         `json:"deck,omitempty"`
	Description     string         `json:"description,omitempty"`
	APIDetailURL    string         `json:"api_detail_url,omitempty"`
	SiteDetailURL   string         `json:"site_detail_url,omitempty"`
	Image           *Image         `json:"image,omitempty"`
	DateAdded       string         `json:"date_added,omitempty"`
	DateLastUpdated string         `json:"date_last_updated,omitempty"`
	Fields          map[string]any `json:"fields,omitempty"`
}

func (e Entity) GiantBombID() int { return e.ID }
func (e Entity) String() string   { return repr(e.ID, e.Name) }

// ResourceType is one row of the types endpoint.
type ResourceType struct {
	ID                 int    `json:"id"`
	DetailResourceName string `json:"detail_resource_name,omitempty"`
	ListResourceName   string `json:"list_resource_name,omitempty"`
}

// ParseDate parses a date in DateLayout, or a bare YYYY-MM-DD.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func repr(id int, name string) string {
	return fmt.Sprintf("<%d: %s>", id, name)
}
