package giantbomb

import "context"

// Game fetches one game.
func (c *Client) Game(ctx context.Context, id Identifier) (Game, error) {
	return fetchOne(ctx, c, ResourceGame, id, mapGame)
}

// Games lists games. Entries are the minimal search projection; fetch a
// single game for the full record.
func (c *Client) Games(ctx context.Context, opts ListOptions) ([]SearchResult, error) {
	return listOf(ctx, c, ResourceGame, opts, mapSearchResult)
}

func (c *Client) Platform(ctx context.Context, id Identifier) (Platform, error) {
	return fetchOne(ctx, c, ResourcePlatform, id, mapPlatform)
}

func (c *Client) Platforms(ctx context.Context, opts ListOptions) ([]Platform, error) {
	return listOf(ctx, c, ResourcePlatform, opts, mapPlatform)
}

func (c *Client) Franchise(ctx context.Context, id Identifier) (Franchise, error) {
	return fetchOne(ctx, c, ResourceFranchise, id, mapFranchise)
}

func (c *Client) Franchises(ctx context.Context, opts ListOptions) ([]Franchise, error) {
	return listOf(ctx, c, ResourceFranchise, opts, mapFranchise)
}

func (c *Client) Genre(ctx context.Context, id Identifier) (Genre, error) {
	return fetchOne(ctx, c, ResourceGenre, id, mapGenre)
}

// Genres lists genres. The endpoint only accepts field_list, limit and offset.
func (c *Client) Genres(ctx context.Context, opts ListOptions) ([]Genre, error) {
	return listOf(ctx, c, ResourceGenre, opts, mapGenre)
}

func (c *Client) Video(ctx context.Context, id Identifier) (Video, error) {
	return fetchOne(ctx, c, ResourceVideo, id, mapVideo)
}

func (c *Client) Videos(ctx context.Context, opts ListOptions) ([]VideoSummary, error) {
	return listOf(ctx, c, ResourceVideo, opts, mapVideoSummary)
}

// Get fetches one object of any resource as a generic Entity.
func (c *Client) Get(ctx context.Context, r Resource, id Identifier) (Entity, error) {
	return fetchOne(ctx, c, r, id, mapEntity)
}

// List fetches one page of any resource's list endpoint as generic entities.
func (c *Client) List(ctx context.Context, r Resource, opts ListOptions) ([]Entity, error) {
	return listOf(ctx, c, r, opts, mapEntity)
}

// Search runs a full-text search. The query is percent-encoded, hyphens
// included.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	params, err := opts.params(query)
	if err != nil {
		return nil, err
	}
	return fetchMany(ctx, c, "search", "search", "search", params, mapSearchResult)
}

// Types lists the resource types the API knows about. Only opts.Filter is
// accepted.
func (c *Client) Types(ctx context.Context, opts ListOptions) ([]ResourceType, error) {
	params, err := opts.paramsFor(Resource(typesPath), typesOpts)
	if err != nil {
		return nil, err
	}
	return fetchMany(ctx, c, "list types", typesPath, typesPath, params, mapResourceType)
}
