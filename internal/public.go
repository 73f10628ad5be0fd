package internal

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/models"
)

type publicAssetData struct {
	PageData
	Asset    *models.Asset
	QRPath   string
	ShareURL string
}

// handlePublicAsset renders the unauthenticated asset page reached by
// scanning the printed QR label. The API's public view already omits
// purchase and invoice data.
func (s *Server) handlePublicAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	asset, err := s.api.PublicAsset(r.Context(), id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("public asset lookup failed", "id", id, "error", err)
		http.Error(w, "service unavailable", http.StatusBadGateway)
		return
	}

	data := publicAssetData{
		PageData: s.pageData(r, asset.AssetTag),
		Asset:    asset,
		QRPath:   "/a/" + itoa64(id) + "/qr.png",
		ShareURL: s.siteBaseURL(r) + "/a/" + itoa64(id),
	}
	s.tmpl.Render(w, "public_asset.html", data)
}

// handleAssetQR serves the QR label image pointing at the public asset page.
// The asset must exist, so labels for deleted or mistyped ids 404 instead of
// encoding a dead link.
func (s *Server) handleAssetQR(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if _, err := s.api.PublicAsset(r.Context(), id); err != nil {
		if apiclient.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("public asset lookup failed", "id", id, "error", err)
		http.Error(w, "service unavailable", http.StatusBadGateway)
		return
	}

	png, err := qrcode.Encode(s.siteBaseURL(r)+"/a/"+itoa64(id), qrcode.Medium, 220)
	if err != nil {
		s.logger.Error("qr encoding failed", "id", id, "error", err)
		http.Error(w, "qr unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}
