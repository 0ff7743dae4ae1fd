package keywords

import (
	"context"

	"seodash/internal/models"
)

// Store loads keyword collections and the site catalogue.
type Store interface {
	Keywords(ctx context.Context, site string) ([]models.KeywordRecord, error)
	Sites(ctx context.Context) ([]models.Site, error)
	Site(ctx context.Context, name string) (*models.Site, error)
}
