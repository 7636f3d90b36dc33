package web

import (
	"fmt"
	"io"
	"net/http"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Dashboard.Snapshot(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleRestock(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	p, err := s.svc.Dashboard.Restock(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductView(p))
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	key, err := s.svc.Dashboard.Backup(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	keys, err := s.svc.Dashboard.Backups(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"backups": keys})
}

func (s *Server) handleDownloadBackup(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	rc, contentType, err := s.svc.Dashboard.OpenBackup(r.Context(), key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key))
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("backup download failed", "key", key, "error", err)
	}
}
