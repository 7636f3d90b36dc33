package web

import (
	"net/http"

	"github.com/vbonduro/officepantry/internal/consumption"
	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/validate"
)

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Consumption.List(r.Context(), r.URL.Query().Get("item"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []*domain.ConsumptionEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var in validate.ConsumptionInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := s.svc.Consumption.Add(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

type bulkRequest struct {
	Rows []consumption.BulkRow `json:"rows"`
}

func (s *Server) handleBulkEntries(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := s.svc.Consumption.AddBulk(r.Context(), req.Rows)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entries": entries, "count": len(entries)})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var in validate.ConsumptionInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := s.svc.Consumption.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Consumption.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Consumption.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type catalogItem struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	items := domain.Catalog()
	out := make([]catalogItem, 0, len(items))
	for _, c := range items {
		out = append(out, catalogItem{Key: c.Key, Name: c.Name, Icon: c.Icon, Category: c.Category})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}
