package giantbomb

// Resource names one logical entity type exposed by the API.
type Resource string

// Resources with a single-item endpoint and, for most, a list endpoint.
const (
	ResourceAccessory   Resource = "accessory"
	ResourceCharacter   Resource = "character"
	ResourceCompany     Resource = "company"
	ResourceConcept     Resource = "concept"
	ResourceFranchise   Resource = "franchise"
	ResourceGame        Resource = "game"
	ResourceGameRating  Resource = "game_rating"
	ResourceGenre       Resource = "genre"
	ResourceLocation    Resource = "location"
	ResourceObject      Resource = "object"
	ResourcePerson      Resource = "person"
	ResourcePlatform    Resource = "platform"
	ResourcePromo       Resource = "promo"
	ResourceRatingBoard Resource = "rating_board"
	ResourceRegion      Resource = "region"
	ResourceRelease     Resource = "release"
	ResourceReview      Resource = "review"
	ResourceTheme       Resource = "theme"
	ResourceUserReview  Resource = "user_review"
	ResourceVideo       Resource = "video"
	ResourceVideoType   Resource = "video_type" // list only, the detail endpoint returns no data
)

// List option names as sent on the wire.
const (
	OptFieldList = "field_list"
	OptLimit     = "limit"
	OptOffset    = "offset"
	OptSort      = "sort"
	OptFilter    = "filter"
	OptPlatforms = "platforms"
	OptGame      = "game"
)

type endpoint struct {
	detail   string   // single-item path, empty when unsupported
	list     string   // list path, empty when unsupported
	listOpts []string // options accepted by the list endpoint
}

// typesPath is the endpoint listing resource types. It only takes a filter.
const typesPath = "types"

var (
	typesOpts    = []string{OptFilter}
	standardOpts = []string{OptFieldList, OptLimit, OptOffset, OptSort, OptFilter}
	pagingOpts   = []string{OptFieldList, OptLimit, OptOffset}
	platformOpts = []string{OptFieldList, OptLimit, OptOffset, OptPlatforms, OptSort, OptFilter}
)

var endpoints = map[Resource]endpoint{
	ResourceAccessory:   {"accessory", "accessories", standardOpts},
	ResourceCharacter:   {"character", "characters", standardOpts},
	ResourceCompany:     {"company", "companies", standardOpts},
	ResourceConcept:     {"concept", "concepts", standardOpts},
	ResourceFranchise:   {"franchise", "franchises", standardOpts},
	ResourceGame:        {"game", "games", platformOpts},
	ResourceGameRating:  {"game_rating", "game_ratings", standardOpts},
	ResourceGenre:       {"genre", "genres", pagingOpts},
	ResourceLocation:    {"location", "locations", standardOpts},
	ResourceObject:      {"object", "objects", standardOpts},
	ResourcePerson:      {"person", "people", standardOpts},
	ResourcePlatform:    {"platform", "platforms", standardOpts},
	ResourcePromo:       {"promo", "promos", standardOpts},
	ResourceRatingBoard: {"rating_board", "rating_boards", standardOpts},
	ResourceRegion:      {"region", "regions", standardOpts},
	ResourceRelease:     {"release", "releases", platformOpts},
	ResourceReview:      {"review", "reviews", standardOpts},
	ResourceTheme:       {"theme", "themes", standardOpts},
	ResourceUserReview:  {"user_review", "user_reviews", []string{OptFieldList, OptGame, OptLimit, OptOffset, OptSort, OptFilter}},
	ResourceVideo:       {"video", "videos", standardOpts},
	ResourceVideoType:   {"", "video_types", pagingOpts},
}

// Resources returns every known resource in a stable order.
func Resources() []Resource {
	return []Resource{
		ResourceAccessory, ResourceCharacter, ResourceCompany, ResourceConcept,
		ResourceFranchise, ResourceGame, ResourceGameRating, ResourceGenre,
		ResourceLocation, ResourceObject, ResourcePerson, ResourcePlatform,
		ResourcePromo, ResourceRatingBoard, ResourceRegion, ResourceRelease,
		ResourceReview, ResourceTheme, ResourceUserReview, ResourceVideo,
		ResourceVideoType,
	}
}

// ParseResource resolves a detail name ("game") or list name ("games").
func ParseResource(name string) (Resource, bool) {
	for r, ep := range endpoints {
		if name == string(r) || (ep.list != "" && name == ep.list) {
			return r, true
		}
	}
	return "", false
}

// HasDetail reports whether the resource supports single-item fetches.
func (r Resource) HasDetail() bool {
	return endpoints[r].detail != ""
}

// HasList reports whether the resource supports list fetches.
func (r Resource) HasList() bool {
	return endpoints[r].list != ""
}

// ListName returns the plural path used by the list endpoint.
func (r Resource) ListName() string {
	return endpoints[r].list
}
