package giantbomb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, s string) raw {
	t.Helper()
	v, err := DecodeJSON([]byte(s))
	require.NoError(t, err)
	r := asRaw(v)
	require.NotNil(t, r)
	return r
}

func TestMapGameDefaults(t *testing.T) {
	g := mapGame(decodeRaw(t, `{"id": 42, "name": "Foo"}`))

	assert.Equal(t, 42, g.ID)
	assert.Equal(t, "Foo", g.Name)
	assert.Empty(t, g.Deck)
	assert.Nil(t, g.Image)
	assert.Nil(t, g.Platforms)
	assert.Nil(t, g.Videos)
	assert.Equal(t, "<42: Foo>", g.String())
	assert.Equal(t, 42, g.GiantBombID())
}

func TestMapGameFull(t *testing.T) {
	g := mapGame(decodeRaw(t, `{
		"id": 1,
		"name": "Doom",
		"deck": "Demons on Mars",
		"original_release_date": "1993-12-10 00:00:00",
		"image": {"super_url": "https://img/super.png", "icon_url": "https://img/icon.png"},
		"images": [{"small_url": "https://img/a.png"}, "junk"],
		"platforms": [{"id": 94, "name": "PC", "abbreviation": "PC"}],
		"developers": [{"id": 7, "name": "id Software"}],
		"genres": [{"id": 32, "name": "First-Person Shooter"}],
		"videos": [{"id": 9, "name": "Quick Look", "publish_date": "2010-01-02 03:04:05"}]
	}`))

	require.Len(t, g.Platforms, 1)
	assert.Equal(t, "PC", g.Platforms[0].Abbreviation)
	require.Len(t, g.Developers, 1)
	assert.Equal(t, "<7: id Software>", g.Developers[0].String())
	require.Len(t, g.Images, 1, "non-object elements are skipped")
	assert.Equal(t, "https://img/super.png", g.Image.Largest())
	require.Len(t, g.Videos, 1)

	published, ok := g.Videos[0].Published()
	require.True(t, ok)
	assert.Equal(t, 2010, published.Year())

	released, ok := g.ReleaseDate()
	require.True(t, ok)
	assert.Equal(t, 1993, released.Year())
}

func TestListNormalization(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"null", `{"platforms": null}`},
		{"scalar", `{"platforms": 3}`},
		{"object", `{"platforms": {"id": 3}}`},
		{"empty", `{"platforms": []}`},
		{"missing", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mapGame(decodeRaw(t, tt.json))
			assert.Nil(t, g.Platforms)
		})
	}
}

func TestImageNotObject(t *testing.T) {
	p := mapPlatform(decodeRaw(t, `{"id": 3, "image": "nope"}`))
	assert.Nil(t, p.Image)
	assert.Empty(t, p.Image.Largest())
}

func TestAccessorCoercion(t *testing.T) {
	r := raw{
		"num":    json.Number("12"),
		"float":  float64(7.9),
		"str":    "33",
		"bad":    "x",
		"flag":   true,
		"numstr": json.Number("5"),
	}
	assert.Equal(t, 12, r.integer("num"))
	assert.Equal(t, 7, r.integer("float"))
	assert.Equal(t, 33, r.integer("str"))
	assert.Equal(t, 0, r.integer("bad"))
	assert.Equal(t, 0, r.integer("missing"))
	assert.Equal(t, "true", r.str("flag"))
	assert.Equal(t, "5", r.str("numstr"))
	assert.Equal(t, "", r.str("missing"))
}

func TestMapVideoType(t *testing.T) {
	v := mapVideo(decodeRaw(t, `{"id": 1, "video_type": "Trailers", "length_seconds": 90}`))
	assert.Equal(t, "Trailers", v.VideoType)
	assert.Equal(t, 90, v.LengthSeconds)

	v = mapVideo(decodeRaw(t, `{"id": 2, "video_type": {"id": 3, "name": "Quick Looks"}}`))
	assert.Equal(t, "Quick Looks", v.VideoType)
}

func TestMapEntityKeepsFields(t *testing.T) {
	e := mapEntity(decodeRaw(t, `{"id": 5, "name": "Mario", "gender": 1}`))
	assert.Equal(t, "<5: Mario>", e.String())
	assert.Equal(t, json.Number("1"), e.Fields["gender"])
}

func TestParseDate(t *testing.T) {
	_, ok := ParseDate("")
	assert.False(t, ok)

	d, ok := ParseDate("2008-11-18")
	require.True(t, ok)
	assert.Equal(t, 18, d.Day())

	_, ok = ParseDate("Nov 2008")
	assert.False(t, ok)
}
