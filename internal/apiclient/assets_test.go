package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

func TestListAssetsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "laptop", r.URL.Query().Get("q"))
		assert.Equal(t, "in_stock", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Write([]byte(`{
			"data": [{"id": 1, "asset_tag": "DSV-0001", "type_id": 2, "status": "in_stock"}],
			"meta": {"current_page": 2, "last_page": 5, "from": 21, "to": 40, "total": 97}
		}`))
	}))
	defer server.Close()

	assets, meta, err := New(server.URL).ListAssets(context.Background(), AssetFilters{
		Q: "laptop", Status: "in_stock", Page: 2, PerPage: 20,
	})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "DSV-0001", assets[0].AssetTag)
	require.NotNil(t, meta)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 97, meta.Total)
}

func TestListAssetsBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "asset_tag": "DSV-0001", "type_id": 2, "status": "in_stock"}]`))
	}))
	defer server.Close()

	assets, meta, err := New(server.URL).ListAssets(context.Background(), AssetFilters{})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Nil(t, meta, "a bare array is a single page")
}

func TestListAssetsEmptyFiltersOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("q"))
		assert.False(t, r.URL.Query().Has("status"))
		assert.False(t, r.URL.Query().Has("type_id"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	_, _, err := New(server.URL).ListAssets(context.Background(), AssetFilters{})
	require.NoError(t, err)
}

func TestUpdateAssetMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/assets/7", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "PUT", r.FormValue("_method"))
		assert.Equal(t, "DSV-0007", r.FormValue("asset_tag"))
		assert.Equal(t, "3", r.FormValue("type_id"))
		assert.Equal(t, "1234.50", r.FormValue("purchase_cost"))
		assert.Equal(t, "1", r.FormValue("unlocked"))

		file, header, err := r.FormFile("invoice")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "factura.pdf", header.Filename)
		content, _ := io.ReadAll(file)
		assert.Equal(t, "pdf-bytes", string(content))

		w.Write([]byte(`{"id": 7, "asset_tag": "DSV-0007", "type_id": 3, "status": "in_stock"}`))
	}))
	defer server.Close()

	tag := "DSV-0007"
	typeID := int64(3)
	cost := 1234.5
	unlocked := true
	asset, err := New(server.URL).WithToken("tok").UpdateAsset(context.Background(), 7,
		models.UpdateAssetRequest{AssetTag: &tag, TypeID: &typeID, PurchaseCost: &cost, Unlocked: &unlocked},
		&Upload{Filename: "factura.pdf", Content: strings.NewReader("pdf-bytes")},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(7), asset.ID)
}

func TestUpdateAssetWithoutInvoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "PUT", r.FormValue("_method"))
		_, _, err := r.FormFile("invoice")
		assert.Error(t, err, "no invoice part expected")
		w.Write([]byte(`{"id": 7, "asset_tag": "DSV-0007", "type_id": 3, "status": "in_stock"}`))
	}))
	defer server.Close()

	tag := "DSV-0007"
	_, err := New(server.URL).UpdateAsset(context.Background(), 7, models.UpdateAssetRequest{AssetTag: &tag}, nil)
	require.NoError(t, err)
}

func TestAggregateAssetsWalksAllPages(t *testing.T) {
	perPage := []int{100, 100, 37}
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		require.GreaterOrEqual(t, page, 1)
		require.LessOrEqual(t, page, 3)
		requests++

		rows := make([]models.Asset, perPage[page-1])
		for i := range rows {
			rows[i] = models.Asset{ID: int64((page-1)*100 + i + 1), AssetTag: fmt.Sprintf("DSV-%04d", (page-1)*100+i+1), Status: models.StatusInStock}
		}
		resp := map[string]any{
			"data": rows,
			"meta": map[string]int{"current_page": page, "last_page": 3, "total": 237},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	assets, err := New(server.URL).AggregateAssets(context.Background(), AssetFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, requests)
	require.Len(t, assets, 237)
	// Server order is preserved across page boundaries.
	assert.Equal(t, int64(1), assets[0].ID)
	assert.Equal(t, int64(237), assets[236].ID)
}

func TestAggregateAssetsBareArrayStopsAfterOnePage(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[{"id": 1, "asset_tag": "DSV-0001", "type_id": 2, "status": "in_stock"}]`))
	}))
	defer server.Close()

	assets, err := New(server.URL).AggregateAssets(context.Background(), AssetFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
	assert.Len(t, assets, 1)
}

func TestAggregateAssetsBoundsInconsistentMeta(t *testing.T) {
	// A server that always claims more pages must not loop forever.
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{
			"data": [{"id": 1, "asset_tag": "DSV-0001", "type_id": 2, "status": "in_stock"}],
			"meta": {"current_page": 1, "last_page": 99999}
		}`))
	}))
	defer server.Close()

	assets, err := New(server.URL).AggregateAssets(context.Background(), AssetFilters{})
	require.NoError(t, err)
	assert.Equal(t, aggregateMaxPages, requests)
	assert.Len(t, assets, aggregateMaxPages)
}

func TestStoragePublicURL(t *testing.T) {
	client := New("https://inventario.example.com/api")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"relative path", "invoices/factura.pdf", "https://inventario.example.com/storage/invoices/factura.pdf"},
		{"leading slash", "/invoices/factura.pdf", "https://inventario.example.com/storage/invoices/factura.pdf"},
		{"already under storage", "storage/invoices/factura.pdf", "https://inventario.example.com/storage/invoices/factura.pdf"},
		{"absolute stays untouched", "https://cdn.example.com/f.pdf", "https://cdn.example.com/f.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := client.StoragePublicURL(tt.path)
			assert.Equal(t, tt.want, got)
			// Idempotent: feeding the output back returns it unchanged.
			assert.Equal(t, got, client.StoragePublicURL(got))
		})
	}
}
