package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Avina-dox/DasavenaTI/internal/models"
)

// AssetFilters are the query parameters of the asset list endpoint. Empty
// string fields are omitted from the request, matching the "all" semantics.
type AssetFilters struct {
	Q       string
	Status  string
	TypeID  string
	Page    int
	PerPage int
}

func (f AssetFilters) query() url.Values {
	values := url.Values{}
	if f.Q != "" {
		values.Set("q", f.Q)
	}
	if f.Status != "" {
		values.Set("status", f.Status)
	}
	if f.TypeID != "" {
		values.Set("type_id", f.TypeID)
	}
	if f.Page > 0 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(f.PerPage))
	}
	return values
}

// ListAssets fetches one page of assets matching the filters. Meta is nil
// when the server answers with a bare array.
func (c *Client) ListAssets(ctx context.Context, f AssetFilters) ([]models.Asset, *models.PageMeta, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/assets", f.query(), &raw); err != nil {
		return nil, nil, err
	}
	assets := []models.Asset{}
	meta, err := normalizeList(raw, &assets)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding asset list: %w", err)
	}
	return assets, meta, nil
}

func (c *Client) GetAsset(ctx context.Context, id int64) (*models.Asset, error) {
	var asset models.Asset
	if err := c.getJSON(ctx, fmt.Sprintf("/assets/%d", id), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// PublicAsset fetches the restricted, unauthenticated view of an asset (no
// purchase or invoice data), used by the shareable QR link page.
func (c *Client) PublicAsset(ctx context.Context, id int64) (*models.Asset, error) {
	var asset models.Asset
	if err := c.getJSON(ctx, fmt.Sprintf("/public/assets/%d", id), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *Client) CreateAsset(ctx context.Context, req models.CreateAssetRequest) (*models.Asset, error) {
	var asset models.Asset
	if err := c.postJSON(ctx, "/assets", req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// Upload is a file attachment for a multipart request.
type Upload struct {
	Filename string
	Content  io.Reader
}

// UpdateAsset updates an asset. The update path is always multipart with a
// _method=PUT override sent via POST, so an invoice attachment can ride
// along; invoice may be nil.
func (c *Client) UpdateAsset(ctx context.Context, id int64, req models.UpdateAssetRequest, invoice *Upload) (*models.Asset, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := writeAssetFields(form, req); err != nil {
		return nil, err
	}
	if invoice != nil {
		part, err := form.CreateFormFile("invoice", invoice.Filename)
		if err != nil {
			return nil, fmt.Errorf("building invoice part: %w", err)
		}
		if _, err := io.Copy(part, invoice.Content); err != nil {
			return nil, fmt.Errorf("copying invoice data: %w", err)
		}
	}
	if err := form.WriteField("_method", "PUT"); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	var asset models.Asset
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/assets/%d", id), nil, &buf, form.FormDataContentType(), &asset)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/assets/%d", id), nil, nil, "", nil)
}

func (c *Client) ListAssetTypes(ctx context.Context) ([]models.AssetType, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/asset-types", nil, &raw); err != nil {
		return nil, err
	}
	types := []models.AssetType{}
	if _, err := normalizeList(raw, &types); err != nil {
		return nil, fmt.Errorf("decoding asset types: %w", err)
	}
	return types, nil
}

func (c *Client) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/brands", nil, &raw); err != nil {
		return nil, err
	}
	brands := []models.Brand{}
	if _, err := normalizeList(raw, &brands); err != nil {
		return nil, fmt.Errorf("decoding brands: %w", err)
	}
	return brands, nil
}

func writeAssetFields(form *multipart.Writer, req models.UpdateAssetRequest) error {
	fields := []struct {
		key   string
		value *string
	}{
		{"asset_tag", req.AssetTag},
		{"brand", req.Brand},
		{"model", req.Model},
		{"serial_number", req.SerialNumber},
		{"status", req.Status},
		{"condition", req.Condition},
		{"purchase_date", req.PurchaseDate},
		{"phone_number", req.PhoneNumber},
		{"carrier", req.Carrier},
		{"notes", req.Notes},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := form.WriteField(f.key, *f.value); err != nil {
			return fmt.Errorf("writing %s field: %w", f.key, err)
		}
	}
	if req.TypeID != nil {
		if err := form.WriteField("type_id", strconv.FormatInt(*req.TypeID, 10)); err != nil {
			return err
		}
	}
	if req.PurchaseCost != nil {
		if err := form.WriteField("purchase_cost", strconv.FormatFloat(*req.PurchaseCost, 'f', 2, 64)); err != nil {
			return err
		}
	}
	if req.Unlocked != nil {
		v := "0"
		if *req.Unlocked {
			v = "1"
		}
		if err := form.WriteField("unlocked", v); err != nil {
			return err
		}
	}
	return nil
}
