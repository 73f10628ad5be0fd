package internal

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/export"
)

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.WriteXLSX)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.handleExport(w, r, "pdf", "application/pdf",
		func(out io.Writer, rows []export.Row, plan export.Plan) error {
			return export.WritePDF(out, rows, plan, s.exportFooter(r))
		})
}

// handleExport walks the full filtered asset set and streams it in the
// requested format. The filename carries the active filters and date.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, ext, contentType string,
	write func(out io.Writer, rows []export.Row, plan export.Plan) error) {
	api := apiFrom(r.Context())
	filters := parseAssetFilters(r)

	plan, err := export.DefaultPlan()
	if err != nil {
		s.logger.Error("export plan unavailable", "error", err)
		http.Error(w, "export unavailable", http.StatusInternalServerError)
		return
	}

	assets, err := api.AggregateAssets(r.Context(), filters)
	if err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		http.Redirect(w, r, "/activos?err="+url.QueryEscape(apiclient.UserMessage(err)), http.StatusSeeOther)
		return
	}

	// Buffer the document so an encoding failure can still produce a clean
	// error response instead of a truncated download.
	var buf bytes.Buffer
	if err := write(&buf, export.Rows(assets), plan); err != nil {
		s.logger.Error("export failed", "format", ext, "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	types, _ := s.lookups.AssetTypes(r.Context(), api)
	filename := export.Filename(filters.Status, typeName(types, filters.TypeID), ext, time.Now())

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}

// exportFooter describes the active filters on every PDF page.
func (s *Server) exportFooter(r *http.Request) string {
	filters := parseAssetFilters(r)
	parts := []string{"Generado " + time.Now().Format("2006-01-02 15:04")}
	if filters.Q != "" {
		parts = append(parts, "búsqueda: "+filters.Q)
	}
	if filters.Status != "" {
		parts = append(parts, "estado: "+filters.Status)
	}
	if filters.TypeID != "" {
		parts = append(parts, "tipo: "+filters.TypeID)
	}
	return strings.Join(parts, " · ")
}
