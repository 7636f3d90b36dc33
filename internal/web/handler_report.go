package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/vbonduro/officepantry/internal/export"
	"github.com/vbonduro/officepantry/internal/filestore"
	"github.com/vbonduro/officepantry/internal/report"
)

// parseReportQuery reads the report filters from the query string:
// range, start, end, category, user, search, sort, dir, page and pageSize.
func (s *Server) parseReportQuery(r *http.Request) (report.Query, error) {
	v := r.URL.Query()

	rng, err := s.svc.Reports.RangeFor(v.Get("range"), v.Get("start"), v.Get("end"))
	if err != nil {
		return report.Query{}, err
	}
	key, err := report.ParseSortKey(v.Get("sort"))
	if err != nil {
		return report.Query{}, err
	}
	dir, err := report.ParseDirection(v.Get("dir"))
	if err != nil {
		return report.Query{}, err
	}
	page, err := queryInt(r, "page")
	if err != nil {
		return report.Query{}, err
	}
	size, err := queryInt(r, "pageSize")
	if err != nil {
		return report.Query{}, err
	}
	if size < 0 || size > 500 {
		return report.Query{}, fmt.Errorf("pageSize must be between 1 and 500")
	}

	return report.Query{
		Range:     rng,
		Category:  v.Get("category"),
		User:      v.Get("user"),
		Search:    v.Get("search"),
		SortBy:    key,
		Direction: dir,
		Page:      page,
		PageSize:  size,
	}, nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseReportQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.svc.Reports.Run(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseReportQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := s.svc.Reports.Export(r.Context(), q, format, &buf); err != nil {
		s.fail(w, r, err)
		return
	}

	contentType := filestore.ContentTypeCSV
	if format == export.FormatXLSX {
		contentType = filestore.ContentTypeXLSX
	}
	writeAttachment(w, contentType, fmt.Sprintf("consumption-report.%s", format), &buf)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	tr, err := s.svc.Reports.Trend(r.Context(), r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tr)
}
