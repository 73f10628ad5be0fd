package internal

import (
	"context"
	"sync"
	"time"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/models"
)

// lookupCache caches the small, slow-changing lookup lists (asset types,
// brands) so filter dropdowns don't hit the API on every page render.
type lookupCache struct {
	mu  sync.Mutex
	ttl time.Duration

	types        []models.AssetType
	typesFetched time.Time

	brands        []models.Brand
	brandsFetched time.Time
}

func newLookupCache(ttl time.Duration) *lookupCache {
	return &lookupCache{ttl: ttl}
}

// AssetTypes returns the cached type list, refreshing it through the given
// client when stale. A refresh failure falls back to the stale copy.
func (lc *lookupCache) AssetTypes(ctx context.Context, api *apiclient.Client) ([]models.AssetType, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if lc.types != nil && time.Since(lc.typesFetched) < lc.ttl {
		return lc.types, nil
	}
	types, err := api.ListAssetTypes(ctx)
	if err != nil {
		if lc.types != nil {
			return lc.types, nil
		}
		return nil, err
	}
	lc.types = types
	lc.typesFetched = time.Now()
	return types, nil
}

func (lc *lookupCache) Brands(ctx context.Context, api *apiclient.Client) ([]models.Brand, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if lc.brands != nil && time.Since(lc.brandsFetched) < lc.ttl {
		return lc.brands, nil
	}
	brands, err := api.ListBrands(ctx)
	if err != nil {
		if lc.brands != nil {
			return lc.brands, nil
		}
		return nil, err
	}
	lc.brands = brands
	lc.brandsFetched = time.Now()
	return brands, nil
}

// typeName resolves a type ID (as sent in the filter query) to its display
// name, for export filenames.
func typeName(types []models.AssetType, id string) string {
	if id == "" {
		return ""
	}
	for _, t := range types {
		if itoa64(t.ID) == id {
			return t.Name
		}
	}
	return ""
}
