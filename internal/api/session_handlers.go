package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/rpp-analyzer/internal/analysis"
	"github.com/ignite/rpp-analyzer/internal/config"
	"github.com/ignite/rpp-analyzer/internal/export"
	"github.com/ignite/rpp-analyzer/internal/ingest"
	"github.com/ignite/rpp-analyzer/internal/pkg/httputil"
	"github.com/ignite/rpp-analyzer/internal/pkg/logger"
	"github.com/ignite/rpp-analyzer/internal/rakuten"
	"github.com/ignite/rpp-analyzer/internal/session"
)

// defaultPreviewRows is how many joined rows the report summary returns
// when the client does not ask for a limit.
const defaultPreviewRows = 5

// CreateSession opens a fresh analysis workspace.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Create()
	logger.Info("session created", "session_id", sess.ID())
	httputil.Created(w, map[string]any{
		"session_id": sess.ID(),
		"created_at": sess.CreatedAt().UTC(),
	})
}

// DeleteSession drops a workspace and everything derived in it.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !h.store.Delete(id) {
		httputil.NotFound(w, "unknown session")
		return
	}
	logger.Info("session deleted", "session_id", id)
	httputil.NoContent(w)
}

// sessionFrom resolves the session id in the URL, writing a 404 on a miss.
func (h *Handlers) sessionFrom(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := h.store.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		httputil.NotFound(w, "unknown session")
		return nil, false
	}
	return sess, true
}

// joinedFrom returns the session's joined table, writing a 409 until both
// reports have been uploaded.
func (h *Handlers) joinedFrom(w http.ResponseWriter, r *http.Request) (*session.Session, *ingest.Table, bool) {
	sess, ok := h.sessionFrom(w, r)
	if !ok {
		return nil, nil, false
	}
	joined, ok := sess.Joined()
	if !ok {
		httputil.Conflict(w, "both reports must be uploaded first")
		return nil, nil, false
	}
	return sess, joined, true
}

// UploadReport ingests one report file into the session. The multipart form
// carries "file" (the CSV) and "role" ("rpp" or "product"). As soon as both
// roles are present the joined view is derived.
func (h *Handlers) UploadReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFrom(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Ingest.MaxUploadBytes())
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		httputil.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}

	role, ok := session.ParseRole(r.FormValue("role"))
	if !ok {
		httputil.BadRequest(w, `role must be "rpp" or "product"`)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.BadRequest(w, "missing file field")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	result, err := h.loader.Load(raw)
	if err != nil {
		httputil.UnprocessableEntity(w, "could not parse upload: "+err.Error(), nil)
		return
	}

	t := result.Table
	ingest.NormalizeColumnNames(t)
	switch role {
	case session.RoleRPP:
		ingest.ApplySpec(t, rakuten.RPPSpec)
	case session.RoleProduct:
		ingest.ApplySpec(t, rakuten.ProductSpec)
	}

	sess.SetUpload(role, &session.Upload{
		Filename:   header.Filename,
		Encoding:   result.Encoding,
		Warnings:   result.Warnings,
		FromCache:  result.FromCache,
		Table:      t,
		ReceivedAt: time.Now(),
	})
	if role == session.RoleRPP {
		sess.SetShop(rakuten.ShopName(header.Filename))
	}

	logger.Info("report uploaded",
		"session_id", sess.ID(),
		"role", string(role),
		"filename", header.Filename,
		"encoding", result.Encoding,
		"rows", len(t.Rows),
		"cached", result.FromCache)

	resp := map[string]any{
		"session_id": sess.ID(),
		"role":       role,
		"filename":   header.Filename,
		"encoding":   result.Encoding,
		"rows":       len(t.Rows),
		"columns":    len(t.Columns),
		"warnings":   result.Warnings,
		"from_cache": result.FromCache,
		"joined":     false,
	}

	joined, err := sess.Derive(rakuten.KeyColumn, rakuten.SuffixRPP, rakuten.SuffixProduct)
	switch {
	case errors.Is(err, session.ErrIncomplete):
		// Waiting on the other report.
	case err != nil:
		var mk *ingest.MissingKeyError
		if errors.As(err, &mk) {
			httputil.UnprocessableEntity(w, "join failed: "+mk.Error(), map[string]any{
				"role":    roleForSide(mk.Side),
				"key":     mk.Key,
				"columns": mk.Columns,
			})
			return
		}
		httputil.InternalError(w, err)
		return
	default:
		resp["joined"] = true
		resp["joined_rows"] = len(joined.Rows)
	}

	httputil.OK(w, resp)
}

// roleForSide translates join sides back into upload roles for error
// payloads. The RPP report is always the left side.
func roleForSide(side string) string {
	if side == "left" {
		return string(session.RoleRPP)
	}
	return string(session.RoleProduct)
}

// GetReport summarizes the joined table: shape, shop, and a row preview.
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	sess, joined, ok := h.joinedFrom(w, r)
	if !ok {
		return
	}

	limit := defaultPreviewRows
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httputil.BadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	if limit > len(joined.Rows) {
		limit = len(joined.Rows)
	}

	shop, fromFilename := sess.Shop()
	httputil.OK(w, map[string]any{
		"shop_name":               shop,
		"shop_name_from_filename": fromFilename,
		"rows":                    len(joined.Rows),
		"columns":                 joined.Columns,
		"preview":                 joined.Rows[:limit],
	})
}

// thresholdsFrom merges query parameter overrides over the configured
// filter defaults, rejecting values outside the accepted bounds.
func (h *Handlers) thresholdsFrom(r *http.Request) (analysis.Thresholds, error) {
	th := analysis.Thresholds{
		MinCPC:    h.cfg.Filters.MinCPC,
		MinCVR:    h.cfg.Filters.MinCVR,
		MinClicks: h.cfg.Filters.MinClicks,
	}

	q := r.URL.Query()
	parse := func(name string, dst *float64, max float64) error {
		v := q.Get(name)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > max {
			return fmt.Errorf("%s must be a number between 0 and %v", name, max)
		}
		*dst = f
		return nil
	}

	if err := parse("min_cpc", &th.MinCPC, config.MaxCPCThreshold); err != nil {
		return th, err
	}
	if err := parse("min_cvr", &th.MinCVR, config.MaxCVRThreshold); err != nil {
		return th, err
	}
	if err := parse("min_clicks", &th.MinClicks, config.MaxClicksThreshold); err != nil {
		return th, err
	}
	return th, nil
}

// filteredFrom runs the threshold filter for the request, mapping the
// failure modes onto their status codes.
func (h *Handlers) filteredFrom(w http.ResponseWriter, r *http.Request) (*ingest.Table, *ingest.Table, analysis.Thresholds, bool) {
	_, joined, ok := h.joinedFrom(w, r)
	if !ok {
		return nil, nil, analysis.Thresholds{}, false
	}

	th, err := h.thresholdsFrom(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return nil, nil, th, false
	}

	filtered, err := analysis.Filter(joined, th)
	if err != nil {
		var mc *analysis.MissingColumnsError
		if errors.As(err, &mc) {
			httputil.UnprocessableEntity(w, mc.Error(), map[string]any{
				"missing_columns": mc.Missing,
			})
			return nil, nil, th, false
		}
		httputil.InternalError(w, err)
		return nil, nil, th, false
	}
	return joined, filtered, th, true
}

// GetKeywords filters the joined table by the discovery thresholds and
// returns the matching rows with their scatter projection.
func (h *Handlers) GetKeywords(w http.ResponseWriter, r *http.Request) {
	joined, filtered, th, ok := h.filteredFrom(w, r)
	if !ok {
		return
	}

	resp := map[string]any{
		"thresholds": th,
		"total_rows": len(joined.Rows),
		"rows":       len(filtered.Rows),
		"columns":    filtered.Columns,
		"data":       filtered.Rows,
		"scatter":    analysis.BuildScatter(filtered),
	}
	if len(filtered.Rows) == 0 {
		resp["advisory"] = "no rows match the current thresholds; relax the filters"
	}
	httputil.OK(w, resp)
}

// GetCorrelation runs the correlation analysis over the joined table.
func (h *Handlers) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	sess, joined, ok := h.joinedFrom(w, r)
	if !ok {
		return
	}

	report, err := analysis.Correlate(joined)
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientColumns) {
			httputil.UnprocessableEntity(w, err.Error(), map[string]any{
				"candidates": rakuten.CorrelationCandidates,
			})
			return
		}
		httputil.InternalError(w, err)
		return
	}

	shop, _ := sess.Shop()
	httputil.OK(w, map[string]any{
		"shop_name": shop,
		"report":    report,
	})
}

// ExportFiltered streams the filtered rows as Shift_JIS CSV.
func (h *Handlers) ExportFiltered(w http.ResponseWriter, r *http.Request) {
	_, filtered, _, ok := h.filteredFrom(w, r)
	if !ok {
		return
	}

	data, err := export.CSV(filtered)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	logger.Info("export served", "rows", len(filtered.Rows), "bytes", len(data))
	w.Header().Set("Content-Type", "text/csv; charset=Shift_JIS")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
