package internal

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/finance"
	"github.com/Avina-dox/DasavenaTI/internal/models"
)

type assetListData struct {
	PageData
	Filters     apiclient.AssetFilters
	Types       []models.AssetType
	Assets      []models.Asset
	Meta        *models.PageMeta
	Pages       []int
	ExportQuery template.URL
	PageQuery   template.URL
}

func (s *Server) handleAssetList(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	filters := parseAssetFilters(r)

	data := assetListData{
		PageData:    s.pageData(r, "Activos"),
		Filters:     filters,
		ExportQuery: filterQuery(filters, "?"),
		PageQuery:   filterQuery(filters, "&"),
	}

	types, err := s.lookups.AssetTypes(r.Context(), api)
	if err == nil {
		data.Types = types
	}

	assets, meta, err := api.ListAssets(r.Context(), filters)
	if err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		data.Error = apiclient.UserMessage(err)
		s.tmpl.Render(w, "assets.html", data)
		return
	}

	data.Assets = assets
	data.Meta = meta
	if meta != nil {
		data.Pages = pageNumbers(meta.CurrentPage, meta.LastPage)
	}
	s.tmpl.Render(w, "assets.html", data)
}

// filterQuery serializes the non-page filters for export links and pager
// links. prefix is "?" for a standalone query, "&" when page= leads.
func filterQuery(f apiclient.AssetFilters, prefix string) template.URL {
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
	if f.PerPage > 0 && f.PerPage != 20 {
		values.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if len(values) == 0 {
		return ""
	}
	return template.URL(prefix + values.Encode())
}

// assetForm echoes the asset form fields back as strings, so a failed submit
// keeps what the user typed.
type assetForm struct {
	AssetTag     string
	TypeID       string
	Brand        string
	Model        string
	SerialNumber string
	Status       string
	Condition    string
	PurchaseDate string
	PurchaseCost string
	PhoneNumber  string
	Carrier      string
	Unlocked     bool
	Notes        string
}

func formFromRequest(r *http.Request) assetForm {
	return assetForm{
		AssetTag:     strings.TrimSpace(r.PostFormValue("asset_tag")),
		TypeID:       strings.TrimSpace(r.PostFormValue("type_id")),
		Brand:        strings.TrimSpace(r.PostFormValue("brand")),
		Model:        strings.TrimSpace(r.PostFormValue("model")),
		SerialNumber: strings.TrimSpace(r.PostFormValue("serial_number")),
		Status:       strings.TrimSpace(r.PostFormValue("status")),
		Condition:    strings.TrimSpace(r.PostFormValue("condition")),
		PurchaseDate: strings.TrimSpace(r.PostFormValue("purchase_date")),
		PurchaseCost: strings.TrimSpace(r.PostFormValue("purchase_cost")),
		PhoneNumber:  strings.TrimSpace(r.PostFormValue("phone_number")),
		Carrier:      strings.TrimSpace(r.PostFormValue("carrier")),
		Unlocked:     r.PostFormValue("unlocked") == "1",
		Notes:        strings.TrimSpace(r.PostFormValue("notes")),
	}
}

func formFromAsset(a *models.Asset) assetForm {
	form := assetForm{
		AssetTag: a.AssetTag,
		TypeID:   itoa64(a.TypeID),
		Brand:    a.BrandName(),
		Status:   a.Status,
	}
	if a.Model != nil {
		form.Model = *a.Model
	}
	if a.SerialNumber != nil {
		form.SerialNumber = *a.SerialNumber
	}
	if a.Condition != nil {
		form.Condition = *a.Condition
	}
	if a.PurchaseDate != nil && len(*a.PurchaseDate) >= 10 {
		form.PurchaseDate = (*a.PurchaseDate)[:10]
	}
	if a.PurchaseCost != nil {
		form.PurchaseCost = strconv.FormatFloat(*a.PurchaseCost, 'f', 2, 64)
	}
	if a.PhoneNumber != nil {
		form.PhoneNumber = *a.PhoneNumber
	}
	if a.Carrier != nil {
		form.Carrier = *a.Carrier
	}
	if a.Unlocked != nil {
		form.Unlocked = *a.Unlocked
	}
	if a.Notes != nil {
		form.Notes = *a.Notes
	}
	return form
}

// validate checks the fields the remote API would reject anyway, so the user
// gets a message without a round trip.
func (f assetForm) validate() string {
	if f.AssetTag == "" {
		return "El tag del activo es obligatorio."
	}
	if f.TypeID == "" {
		return "El tipo de activo es obligatorio."
	}
	if _, err := strconv.ParseInt(f.TypeID, 10, 64); err != nil {
		return "El tipo de activo no es válido."
	}
	if f.PurchaseCost != "" {
		if v, err := strconv.ParseFloat(f.PurchaseCost, 64); err != nil || v < 0 {
			return "El costo de compra no es válido."
		}
	}
	if f.PurchaseDate != "" {
		if _, err := time.Parse("2006-01-02", f.PurchaseDate); err != nil {
			return "La fecha de compra no es válida."
		}
	}
	return ""
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (f assetForm) toCreateRequest() models.CreateAssetRequest {
	typeID, _ := strconv.ParseInt(f.TypeID, 10, 64)
	req := models.CreateAssetRequest{
		AssetTag:     f.AssetTag,
		TypeID:       typeID,
		Brand:        optString(f.Brand),
		Model:        optString(f.Model),
		SerialNumber: optString(f.SerialNumber),
		Status:       optString(f.Status),
		Condition:    optString(f.Condition),
		PurchaseDate: optString(f.PurchaseDate),
		PhoneNumber:  optString(f.PhoneNumber),
		Carrier:      optString(f.Carrier),
		Notes:        optString(f.Notes),
		Unlocked:     &f.Unlocked,
	}
	if f.PurchaseCost != "" {
		if v, err := strconv.ParseFloat(f.PurchaseCost, 64); err == nil {
			req.PurchaseCost = &v
		}
	}
	return req
}

// toUpdateRequest serializes the whole form; the edit page is authoritative
// for every field, empty meaning cleared.
func (f assetForm) toUpdateRequest() models.UpdateAssetRequest {
	req := models.UpdateAssetRequest{
		AssetTag:     &f.AssetTag,
		Brand:        &f.Brand,
		Model:        &f.Model,
		SerialNumber: &f.SerialNumber,
		Status:       &f.Status,
		Condition:    &f.Condition,
		PurchaseDate: &f.PurchaseDate,
		PhoneNumber:  &f.PhoneNumber,
		Carrier:      &f.Carrier,
		Notes:        &f.Notes,
		Unlocked:     &f.Unlocked,
	}
	if typeID, err := strconv.ParseInt(f.TypeID, 10, 64); err == nil {
		req.TypeID = &typeID
	}
	if f.PurchaseCost != "" {
		if v, err := strconv.ParseFloat(f.PurchaseCost, 64); err == nil {
			req.PurchaseCost = &v
		}
	}
	return req
}

type assetFormData struct {
	PageData
	Types  []models.AssetType
	Brands []models.Brand
	Form   assetForm
}

func (s *Server) handleAssetNew(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	data := assetFormData{
		PageData: s.pageData(r, "Nuevo activo"),
		Form:     assetForm{Status: models.StatusInStock},
	}
	if types, err := s.lookups.AssetTypes(r.Context(), api); err == nil {
		data.Types = types
	}
	if brands, err := s.lookups.Brands(r.Context(), api); err == nil {
		data.Brands = brands
	}
	s.tmpl.Render(w, "asset_new.html", data)
}

func (s *Server) handleAssetCreate(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := formFromRequest(r)

	renderError := func(msg string) {
		data := assetFormData{PageData: s.pageData(r, "Nuevo activo"), Form: form}
		data.Error = msg
		if types, err := s.lookups.AssetTypes(r.Context(), api); err == nil {
			data.Types = types
		}
		if brands, err := s.lookups.Brands(r.Context(), api); err == nil {
			data.Brands = brands
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.tmpl.Render(w, "asset_new.html", data)
	}

	if msg := form.validate(); msg != "" {
		renderError(msg)
		return
	}

	asset, err := api.CreateAsset(r.Context(), form.toCreateRequest())
	if err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		renderError(apiclient.UserMessage(err))
		return
	}

	s.logger.Info("asset created", "id", asset.ID, "tag", asset.AssetTag)
	http.Redirect(w, r, "/activos?ok="+url.QueryEscape("Activo creado."), http.StatusSeeOther)
}

type assetEditData struct {
	PageData
	Asset      *models.Asset
	Types      []models.AssetType
	Brands     []models.Brand
	Form       assetForm
	InvoiceURL string
	ShareURL   string
	Preview    *finance.Preview
}

func (s *Server) handleAssetEdit(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	asset, err := api.GetAsset(r.Context(), id)
	if err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		if apiclient.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/activos?err="+url.QueryEscape(apiclient.UserMessage(err)), http.StatusSeeOther)
		return
	}

	s.renderAssetEdit(w, r, asset, formFromAsset(asset), "")
}

func (s *Server) renderAssetEdit(w http.ResponseWriter, r *http.Request, asset *models.Asset, form assetForm, errMsg string) {
	api := apiFrom(r.Context())
	data := assetEditData{
		PageData: s.pageData(r, "Editar "+asset.AssetTag),
		Asset:    asset,
		Form:     form,
		ShareURL: s.siteBaseURL(r) + "/a/" + itoa64(asset.ID),
	}
	if errMsg != "" {
		data.Error = errMsg
	}
	if types, err := s.lookups.AssetTypes(r.Context(), api); err == nil {
		data.Types = types
	}
	if brands, err := s.lookups.Brands(r.Context(), api); err == nil {
		data.Brands = brands
	}
	if asset.InvoicePath != nil {
		data.InvoiceURL = api.StoragePublicURL(*asset.InvoicePath)
	}
	if asset.PurchaseCost != nil && asset.PurchaseDate != nil && len(*asset.PurchaseDate) >= 10 {
		if date, err := time.Parse("2006-01-02", (*asset.PurchaseDate)[:10]); err == nil {
			preview := finance.PreviewValue(*asset.PurchaseCost, date, time.Now())
			data.Preview = &preview
		}
	}
	s.tmpl.Render(w, "asset_edit.html", data)
}

const maxInvoiceMemory = 32 << 20

func (s *Server) handleAssetUpdate(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(maxInvoiceMemory); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := formFromRequest(r)

	renderError := func(msg string) {
		asset, err := api.GetAsset(r.Context(), id)
		if err != nil {
			http.Redirect(w, r, "/activos?err="+url.QueryEscape(msg), http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.renderAssetEdit(w, r, asset, form, msg)
	}

	if msg := form.validate(); msg != "" {
		renderError(msg)
		return
	}

	var invoice *apiclient.Upload
	if file, header, err := r.FormFile("invoice"); err == nil {
		defer file.Close()
		invoice = &apiclient.Upload{Filename: header.Filename, Content: file}
	}

	if _, err := api.UpdateAsset(r.Context(), id, form.toUpdateRequest(), invoice); err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		renderError(apiclient.UserMessage(err))
		return
	}

	s.logger.Info("asset updated", "id", id)
	http.Redirect(w, r, "/activos/"+itoa64(id)+"?ok="+url.QueryEscape("Cambios guardados."), http.StatusSeeOther)
}

func (s *Server) handleAssetDelete(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := api.DeleteAsset(r.Context(), id); err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		http.Redirect(w, r, "/activos?err="+url.QueryEscape(apiclient.UserMessage(err)), http.StatusSeeOther)
		return
	}

	s.logger.Info("asset deleted", "id", id)
	http.Redirect(w, r, "/activos?ok="+url.QueryEscape("Activo eliminado."), http.StatusSeeOther)
}

// handleDepreciationPreview serves the live estimate shown while filling the
// asset forms. The server-computed snapshot remains authoritative once the
// record exists.
func (s *Server) handleDepreciationPreview(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("purchase_date")
	costStr := r.URL.Query().Get("cost")

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		http.Error(w, "invalid purchase_date", http.StatusBadRequest)
		return
	}
	cost, err := strconv.ParseFloat(costStr, 64)
	if err != nil || cost < 0 {
		http.Error(w, "invalid cost", http.StatusBadRequest)
		return
	}

	preview := finance.PreviewValue(cost, date, time.Now())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(preview)
}
