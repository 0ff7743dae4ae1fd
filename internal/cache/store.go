package cache

import (
	"context"

	"seodash/internal/keywords"
	"seodash/internal/models"
)

// KindKeywords caches a site's raw keyword collection.
const KindKeywords = "keywords"

// Store caches keyword collections from an underlying store per site.
type Store struct {
	keywords.Store
	cache *Client
}

// NewStore wraps store with c. A nil c disables caching.
func NewStore(store keywords.Store, c *Client) *Store {
	return &Store{Store: store, cache: c}
}

// Keywords returns the site's collection, from the cache when present.
func (s *Store) Keywords(ctx context.Context, site string) ([]models.KeywordRecord, error) {
	return Remember(ctx, s.cache, ReportKey(site, KindKeywords), func(ctx context.Context) ([]models.KeywordRecord, error) {
		return s.Store.Keywords(ctx, site)
	})
}

// Cache returns the report cache, which may be nil.
func (s *Store) Cache() *Client {
	return s.cache
}
