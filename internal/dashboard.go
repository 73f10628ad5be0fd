package internal

import (
	"net/http"
	"sort"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/models"
)

const unassignedBucket = "Sin asignar"

type labelCount struct {
	Label string
	Count int
}

type assigneeGroup struct {
	Name   string
	Assets []models.Asset
}

type dashboardData struct {
	PageData
	Total      int
	ByType     []labelCount
	ByBrand    []labelCount
	ByAssignee []assigneeGroup
}

// handleDashboard renders the summary page over the full asset inventory,
// paged out of the API in batches.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	data := dashboardData{PageData: s.pageData(r, "Resumen")}

	assets, err := api.AggregateAssets(r.Context(), apiclient.AssetFilters{})
	if err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		data.Error = apiclient.UserMessage(err)
		s.tmpl.Render(w, "dashboard.html", data)
		return
	}

	data.Total = len(assets)
	data.ByType = countBy(assets, func(a models.Asset) string { return a.TypeName() })
	data.ByBrand = countBy(assets, func(a models.Asset) string { return a.BrandName() })
	data.ByAssignee = groupByAssignee(assets)
	s.tmpl.Render(w, "dashboard.html", data)
}

// countBy tallies assets per label, sorted by count descending then label,
// so renders are deterministic. Empty labels fall into a trailing "—".
func countBy(assets []models.Asset, key func(models.Asset) string) []labelCount {
	counts := map[string]int{}
	for _, a := range assets {
		label := key(a)
		if label == "" {
			label = "—"
		}
		counts[label]++
	}
	out := make([]labelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, labelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// groupByAssignee groups assigned assets per person, alphabetically, with
// unassigned inventory in a final bucket.
func groupByAssignee(assets []models.Asset) []assigneeGroup {
	groups := map[string][]models.Asset{}
	for _, a := range assets {
		name := a.AssigneeName()
		if name == "" {
			name = unassignedBucket
		}
		groups[name] = append(groups[name], a)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		if name != unassignedBucket {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := groups[unassignedBucket]; ok {
		names = append(names, unassignedBucket)
	}

	out := make([]assigneeGroup, 0, len(names))
	for _, name := range names {
		out = append(out, assigneeGroup{Name: name, Assets: groups[name]})
	}
	return out
}
