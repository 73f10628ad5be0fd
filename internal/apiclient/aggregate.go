package apiclient

import (
	"context"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

const (
	// aggregateBatchSize keeps round trips low when walking every page.
	aggregateBatchSize = 150
	// aggregateMaxPages bounds the walk even if the server reports
	// inconsistent pagination metadata; whatever was accumulated by then
	// is returned.
	aggregateMaxPages = 200
)

// AggregateAssets walks every page of the filtered asset list and
// concatenates the results in server order. Consumers that need the whole
// filtered set (dashboard charts, spreadsheet/PDF export) use this instead
// of ListAssets. Duplicate or missing rows across pages are the server's
// responsibility and are not corrected here.
func (c *Client) AggregateAssets(ctx context.Context, f AssetFilters) ([]models.Asset, error) {
	f.PerPage = aggregateBatchSize

	all := []models.Asset{}
	page := 1
	for i := 0; i < aggregateMaxPages; i++ {
		f.Page = page
		rows, meta, err := c.ListAssets(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)

		if meta == nil || meta.CurrentPage >= meta.LastPage {
			break
		}
		page = meta.CurrentPage + 1
	}
	return all, nil
}
