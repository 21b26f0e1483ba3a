package giantbomb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const imageJSON = `{
	"icon_url": "i/icon", "tiny_url": "i/tiny", "small_url": "i/small",
	"medium_url": "i/medium", "thumb_url": "i/thumb", "screen_url": "i/screen",
	"super_url": "i/super", "tags": "All Images"
}`

var fullImage = Image{
	IconURL: "i/icon", TinyURL: "i/tiny", SmallURL: "i/small",
	MediumURL: "i/medium", ThumbURL: "i/thumb", ScreenURL: "i/screen",
	SuperURL: "i/super", Tags: "All Images",
}

func imagePtr() *Image {
	img := fullImage
	return &img
}

func TestRecordRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		json string
		fn   func(raw) any
		want any
	}{
		{
			name: "image",
			json: imageJSON,
			fn:   func(r raw) any { return mapImageValue(r) },
			want: fullImage,
		},
		{
			name: "ref",
			json: `{"id": 7, "name": "Nintendo", "api_detail_url": "a/7", "site_detail_url": "s/7"}`,
			fn:   func(r raw) any { return mapRef(r) },
			want: Ref{ID: 7, Name: "Nintendo", APIDetailURL: "a/7", SiteDetailURL: "s/7"},
		},
		{
			name: "platform",
			json: `{"id": 94, "name": "PC", "abbreviation": "PC", "deck": "Personal computer",
				"api_detail_url": "a/94", "site_detail_url": "s/94", "image": ` + imageJSON + `}`,
			fn: func(r raw) any { return mapPlatform(r) },
			want: Platform{
				ID: 94, Name: "PC", Abbreviation: "PC", Deck: "Personal computer",
				APIDetailURL: "a/94", SiteDetailURL: "s/94", Image: imagePtr(),
			},
		},
		{
			name: "franchise",
			json: `{"id": 3, "name": "Zelda", "deck": "Link", "api_detail_url": "a/3",
				"site_detail_url": "s/3", "image": ` + imageJSON + `}`,
			fn: func(r raw) any { return mapFranchise(r) },
			want: Franchise{
				ID: 3, Name: "Zelda", Deck: "Link", APIDetailURL: "a/3",
				SiteDetailURL: "s/3", Image: imagePtr(),
			},
		},
		{
			name: "genre",
			json: `{"id": 5, "name": "Action", "api_detail_url": "a/5", "site_detail_url": "s/5"}`,
			fn:   func(r raw) any { return mapGenre(r) },
			want: Genre{ID: 5, Name: "Action", APIDetailURL: "a/5", SiteDetailURL: "s/5"},
		},
		{
			name: "video summary",
			json: `{"id": 9, "name": "Quick Look", "deck": "A look", "image": ` + imageJSON + `,
				"url": "v/9.mp4", "publish_date": "2010-01-02 03:04:05",
				"api_detail_url": "a/9", "site_detail_url": "s/9"}`,
			fn: func(r raw) any { return mapVideoSummary(r) },
			want: VideoSummary{
				ID: 9, Name: "Quick Look", Deck: "A look", Image: imagePtr(),
				URL: "v/9.mp4", PublishDate: "2010-01-02 03:04:05",
				APIDetailURL: "a/9", SiteDetailURL: "s/9",
			},
		},
		{
			name: "video",
			json: `{"id": 9, "name": "Quick Look", "deck": "A look", "image": ` + imageJSON + `,
				"url": "v/9.mp4", "publish_date": "2010-01-02 03:04:05",
				"api_detail_url": "a/9", "site_detail_url": "s/9",
				"high_url": "v/high", "low_url": "v/low", "hd_url": "v/hd",
				"length_seconds": 600, "user": "jeff", "video_type": "Quick Looks"}`,
			fn: func(r raw) any { return mapVideo(r) },
			want: Video{
				VideoSummary: VideoSummary{
					ID: 9, Name: "Quick Look", Deck: "A look", Image: imagePtr(),
					URL: "v/9.mp4", PublishDate: "2010-01-02 03:04:05",
					APIDetailURL: "a/9", SiteDetailURL: "s/9",
				},
				HighURL: "v/high", LowURL: "v/low", HDURL: "v/hd",
				LengthSeconds: 600, User: "jeff", VideoType: "Quick Looks",
			},
		},
		{
			name: "game",
			json: `{"id": 42, "name": "Foo", "deck": "Short", "description": "<p>Long</p>",
				"platforms": [{"id": 94, "name": "PC"}],
				"developers": [{"id": 1, "name": "Dev"}],
				"publishers": [{"id": 2, "name": "Pub"}],
				"franchises": [{"id": 3, "name": "Series"}],
				"image": ` + imageJSON + `,
				"images": [` + imageJSON + `],
				"genres": [{"id": 5, "name": "Action"}],
				"original_release_date": "1993-12-10 00:00:00",
				"videos": [{"id": 9, "name": "Quick Look"}],
				"api_detail_url": "a/42", "site_detail_url": "s/42",
				"date_added": "2008-04-01 00:00:00", "date_last_updated": "2020-05-06 07:08:09"}`,
			fn: func(r raw) any { return mapGame(r) },
			want: Game{
				ID: 42, Name: "Foo", Deck: "Short", Description: "<p>Long</p>",
				Platforms:           []Platform{{ID: 94, Name: "PC"}},
				Developers:          []Ref{{ID: 1, Name: "Dev"}},
				Publishers:          []Ref{{ID: 2, Name: "Pub"}},
				Franchises:          []Ref{{ID: 3, Name: "Series"}},
				Image:               imagePtr(),
				Images:              []Image{fullImage},
				Genres:              []Genre{{ID: 5, Name: "Action"}},
				OriginalReleaseDate: "1993-12-10 00:00:00",
				Videos:              []VideoSummary{{ID: 9, Name: "Quick Look"}},
				APIDetailURL:        "a/42",
				SiteDetailURL:       "s/42",
				DateAdded:           "2008-04-01 00:00:00",
				DateLastUpdated:     "2020-05-06 07:08:09",
			},
		},
		{
			name: "search result",
			json: `{"id": 1, "name": "Doom", "deck": "Demons", "resource_type": "game",
				"api_detail_url": "a/1", "site_detail_url": "s/1", "image": ` + imageJSON + `}`,
			fn: func(r raw) any { return mapSearchResult(r) },
			want: SearchResult{
				ID: 1, Name: "Doom", Deck: "Demons", ResourceType: "game",
				APIDetailURL: "a/1", SiteDetailURL: "s/1", Image: imagePtr(),
			},
		},
		{
			name: "resource type",
			json: `{"id": 3030, "detail_resource_name": "game", "list_resource_name": "games"}`,
			fn:   func(r raw) any { return mapResourceType(r) },
			want: ResourceType{ID: 3030, DetailResourceName: "game", ListResourceName: "games"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(decodeRaw(t, tt.json)))
		})
	}
}

func TestEntityRoundTrip(t *testing.T) {
	r := decodeRaw(t, `{"id": 6, "name": "id Software", "deck": "Texas", "description": "<p>FPS</p>",
		"api_detail_url": "a/6", "site_detail_url": "s/6", "image": `+imageJSON+`,
		"date_added": "2008-01-01 00:00:00", "date_last_updated": "2021-01-01 00:00:00",
		"abbreviation": "ID"}`)

	e := mapEntity(r)
	assert.Equal(t, 6, e.ID)
	assert.Equal(t, "id Software", e.Name)
	assert.Equal(t, "Texas", e.Deck)
	assert.Equal(t, "<p>FPS</p>", e.Description)
	assert.Equal(t, "a/6", e.APIDetailURL)
	assert.Equal(t, "s/6", e.SiteDetailURL)
	assert.Equal(t, imagePtr(), e.Image)
	assert.Equal(t, "2008-01-01 00:00:00", e.DateAdded)
	assert.Equal(t, "2021-01-01 00:00:00", e.DateLastUpdated)
	assert.Equal(t, "ID", e.Fields["abbreviation"])
}
