package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/poimap/internal/export"
	"github.com/sells-group/poimap/internal/filter"
	"github.com/sells-group/poimap/internal/model"
	"github.com/sells-group/poimap/internal/render"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type optionsResponse struct {
	Categories []string `json:"categories"`
	States     []string `json:"states,omitempty"`
	Cities     []string `json:"cities,omitempty"`
}

// handleOptions returns the cascading option lists. States appear once a
// category is chosen, cities once category (and optionally state) are; the
// All sentinel leads the state and city lists, mirroring the sidebar.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	ds, err := s.dataset(r)
	if err != nil {
		s.connectionError(w, err)
		return
	}

	categories, err := filter.Categories(ds)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	resp := optionsResponse{Categories: categories}

	category := r.URL.Query().Get("category")
	if category == "" {
		respondJSON(w, http.StatusOK, resp)
		return
	}
	if err := filter.ValidateSelection(ds, model.FilterSelection{Category: category}); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp.States = append([]string{filter.All}, filter.States(ds, category)...)

	state := r.URL.Query().Get("state")
	if state == "" {
		state = filter.All
	}
	if err := filter.ValidateSelection(ds, model.FilterSelection{Category: category, State: state}); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp.Cities = append([]string{filter.All}, filter.Cities(ds, category, state)...)

	respondJSON(w, http.StatusOK, resp)
}

// handleView runs a full cycle and returns the render model.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sel, ok := parseSelection(w, r)
	if !ok {
		return
	}

	ds, err := s.dataset(r)
	if err != nil {
		s.connectionError(w, err)
		return
	}

	m, err := render.Build(ds, sel)
	if err != nil {
		switch {
		case errors.Is(err, filter.ErrEmptyCategory):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, filter.ErrInvalidSelection):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			zap.L().Error("server: build view", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to build view")
		}
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// handleExport streams the full filtered set (no row cap) as csv or xlsx.
// Shapefile export is CLI-only since it produces multiple files.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		respondError(w, http.StatusBadRequest, "unsupported format: "+format)
		return
	}

	sel, ok := parseSelection(w, r)
	if !ok {
		return
	}

	ds, err := s.dataset(r)
	if err != nil {
		s.connectionError(w, err)
		return
	}
	if err := filter.ValidateSelection(ds, sel); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, filter.ErrEmptyCategory) {
			status = http.StatusUnprocessableEntity
		}
		respondError(w, status, err.Error())
		return
	}

	filtered := filter.Apply(ds, sel)

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="filtered_poi_data.csv"`)
		if err := export.WriteCSV(w, filtered); err != nil {
			zap.L().Error("server: csv export", zap.Error(err))
		}
	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, filtered); err != nil {
			zap.L().Error("server: xlsx export", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "failed to build workbook")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="filtered_poi_data.xlsx"`)
		_, _ = w.Write(buf.Bytes())
	}
}

// parseSelection reads the filter parameters. Category is required; state
// and city default to the All sentinel. Writes the error response itself
// and reports ok=false on bad input.
func parseSelection(w http.ResponseWriter, r *http.Request) (model.FilterSelection, bool) {
	q := r.URL.Query()

	sel := model.FilterSelection{
		Category: q.Get("category"),
		State:    q.Get("state"),
		City:     q.Get("city"),
	}
	if sel.Category == "" {
		respondError(w, http.StatusBadRequest, "category is required")
		return sel, false
	}
	if sel.State == "" {
		sel.State = filter.All
	}
	if sel.City == "" {
		sel.City = filter.All
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return sel, false
		}
		sel.Limit = n
	}

	return sel, true
}

// connectionError maps any source failure to 503: fatal for the cycle, no
// partial rendering.
func (s *Server) connectionError(w http.ResponseWriter, err error) {
	zap.L().Error("server: data source unavailable", zap.Error(err))
	respondError(w, http.StatusServiceUnavailable, "failed to connect to the data source")
}
