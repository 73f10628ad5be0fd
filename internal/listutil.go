package internal

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
)

// parseAssetFilters parses q, status, type_id, page and per_page from the
// request. Defaults: page=1, per_page=20 (max 100).
func parseAssetFilters(r *http.Request) apiclient.AssetFilters {
	values := r.URL.Query()

	page := 1
	if s := strings.TrimSpace(values.Get("page")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			page = v
		}
	}

	perPage := 20
	if s := strings.TrimSpace(values.Get("per_page")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			if v > 100 {
				v = 100
			}
			perPage = v
		}
	}

	return apiclient.AssetFilters{
		Q:       strings.TrimSpace(values.Get("q")),
		Status:  strings.TrimSpace(values.Get("status")),
		TypeID:  strings.TrimSpace(values.Get("type_id")),
		Page:    page,
		PerPage: perPage,
	}
}

// parseAssignmentFilters parses q, state, from, to and page from the
// request. State values other than current/returned mean all.
func parseAssignmentFilters(r *http.Request) apiclient.AssignmentFilters {
	values := r.URL.Query()

	page := 1
	if s := strings.TrimSpace(values.Get("page")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			page = v
		}
	}

	state := strings.TrimSpace(values.Get("state"))
	if state != "current" && state != "returned" {
		state = ""
	}

	return apiclient.AssignmentFilters{
		Q:     strings.TrimSpace(values.Get("q")),
		State: state,
		From:  strings.TrimSpace(values.Get("from")),
		To:    strings.TrimSpace(values.Get("to")),
		Page:  page,
	}
}

func itoa64(v int64) string {
	return strconv.FormatInt(v, 10)
}

// pageNumbers produces the compact set of page buttons to render: first two
// pages, the current page and its neighbors, and the last two pages, sorted
// and deduplicated within [1, last]. For current=50, last=100 this yields
// {1, 2, 49, 50, 51, 99, 100}.
func pageNumbers(current, last int) []int {
	if last < 1 {
		last = 1
	}
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}

	candidates := []int{1, 2, current - 1, current, current + 1, last - 1, last}
	seen := make(map[int]bool, len(candidates))
	pages := make([]int, 0, len(candidates))
	for _, n := range candidates {
		if n < 1 || n > last || seen[n] {
			continue
		}
		seen[n] = true
		pages = append(pages, n)
	}
	sort.Ints(pages)
	return pages
}
