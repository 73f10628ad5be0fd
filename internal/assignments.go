package internal

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/models"
)

type assignData struct {
	PageData
	Search       string
	Users        []models.User
	SelectedUser *models.User
	Assets       []models.Asset
}

// handleAssignPage drives the two-step assignment flow: search for a person,
// then pick in-stock assets to hand over.
func (s *Server) handleAssignPage(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	data := assignData{
		PageData: s.pageData(r, "Asignar activos"),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
	}

	if idStr := r.URL.Query().Get("user_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		user, err := api.GetUser(r.Context(), id)
		if err != nil {
			if s.redirectUnauthorized(w, r, err) {
				return
			}
			data.Error = apiclient.UserMessage(err)
			s.tmpl.Render(w, "assign.html", data)
			return
		}
		data.SelectedUser = user

		assets, err := api.AggregateAssets(r.Context(), apiclient.AssetFilters{
			Q:      data.Search,
			Status: models.StatusInStock,
		})
		if err != nil {
			data.Error = apiclient.UserMessage(err)
		}
		data.Assets = assets
		s.tmpl.Render(w, "assign.html", data)
		return
	}

	if data.Search != "" {
		users, _, err := api.ListUsers(r.Context(), data.Search)
		if err != nil {
			if s.redirectUnauthorized(w, r, err) {
				return
			}
			data.Error = apiclient.UserMessage(err)
		}
		data.Users = users
	}
	s.tmpl.Render(w, "assign.html", data)
}

// handleBulkAssign creates one assignment per selected asset, all in
// parallel, and reports a combined tally. Partial failure is expected when
// someone grabs an asset concurrently; succeeded rows stay assigned.
func (s *Server) handleBulkAssign(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	userID, err := strconv.ParseInt(r.PostFormValue("user_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user", http.StatusBadRequest)
		return
	}
	assetIDs := make([]int64, 0, len(r.PostForm["asset_id"]))
	for _, raw := range r.PostForm["asset_id"] {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			assetIDs = append(assetIDs, id)
		}
	}
	if len(assetIDs) == 0 {
		http.Redirect(w, r, "/asignar?user_id="+itoa64(userID)+"&err="+url.QueryEscape("Selecciona al menos un activo."), http.StatusSeeOther)
		return
	}

	results := make([]error, len(assetIDs))
	var wg sync.WaitGroup
	for i, assetID := range assetIDs {
		wg.Add(1)
		go func(i int, assetID int64) {
			defer wg.Done()
			_, err := api.CreateAssignment(r.Context(), models.CreateAssignmentRequest{
				UserID:       userID,
				AssetID:      assetID,
				ConditionOut: models.ConditionGood,
			})
			results[i] = err
		}(i, assetID)
	}
	wg.Wait()

	ok, failed := 0, 0
	for i, err := range results {
		if err != nil {
			failed++
			s.logger.Warn("assignment failed", "user_id", userID, "asset_id", assetIDs[i], "error", err)
			continue
		}
		ok++
	}

	msg := fmt.Sprintf("Asignados %d activo(s).", ok)
	target := "/asignar?user_id=" + itoa64(userID)
	if failed > 0 {
		msg += fmt.Sprintf(" Fallaron %d asignación(es).", failed)
		http.Redirect(w, r, target+"&err="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target+"&ok="+url.QueryEscape(msg), http.StatusSeeOther)
}

type assignmentListData struct {
	PageData
	Filters     apiclient.AssignmentFilters
	Assignments []models.Assignment
	Meta        *models.PageMeta
	Pages       []int
	PageQuery   template.URL
}

// handleAssignmentHistory lists every assignment, open and closed, with
// text, state and date-range filters plus the same compact pagination as
// the asset list.
func (s *Server) handleAssignmentHistory(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	filters := parseAssignmentFilters(r)

	data := assignmentListData{
		PageData:  s.pageData(r, "Historial de asignaciones"),
		Filters:   filters,
		PageQuery: assignmentQuery(filters),
	}

	assignments, meta, err := api.ListAssignments(r.Context(), filters)
	if err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		data.Error = apiclient.UserMessage(err)
		s.tmpl.Render(w, "assignments.html", data)
		return
	}

	data.Assignments = assignments
	data.Meta = meta
	if meta != nil {
		data.Pages = pageNumbers(meta.CurrentPage, meta.LastPage)
	}
	s.tmpl.Render(w, "assignments.html", data)
}

// assignmentQuery serializes the non-page filters for the pager links.
func assignmentQuery(f apiclient.AssignmentFilters) template.URL {
	values := url.Values{}
	if f.Q != "" {
		values.Set("q", f.Q)
	}
	if f.State != "" {
		values.Set("state", f.State)
	}
	if f.From != "" {
		values.Set("from", f.From)
	}
	if f.To != "" {
		values.Set("to", f.To)
	}
	if len(values) == 0 {
		return ""
	}
	return template.URL("&" + values.Encode())
}

// handleAssignmentReturn closes an open assignment and sends the browser
// back where it came from.
func (s *Server) handleAssignmentReturn(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Back to the page the action came from, same-host only.
	target := "/activos"
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" && (ref.Host == "" || ref.Host == r.Host) {
		target = ref.RequestURI()
	}

	req := models.ReturnAssignmentRequest{ConditionIn: models.ConditionGood}
	if err := api.ReturnAssignment(r.Context(), id, req); err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		http.Redirect(w, r, appendQuery(target, "err", apiclient.UserMessage(err)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, appendQuery(target, "ok", "Devolución registrada."), http.StatusSeeOther)
}

func appendQuery(target, key, value string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + key + "=" + url.QueryEscape(value)
}
