package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vbonduro/officepantry/internal/domain"
	"github.com/vbonduro/officepantry/internal/export"
	"github.com/vbonduro/officepantry/internal/report"
)

// ReportService runs report queries over every stored consumption entry.
type ReportService struct {
	entries entryRepository
	now     func() time.Time
}

func NewReportService(entries entryRepository) *ReportService {
	return &ReportService{entries: entries, now: time.Now}
}

func (s *ReportService) records(ctx context.Context) ([]domain.ReportRecord, error) {
	entries, err := s.entries.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return report.FromEntries(entries), nil
}

// RangeFor resolves a date preset against the service clock.
func (s *ReportService) RangeFor(preset, start, end string) (report.DateRange, error) {
	return report.RangeFor(preset, start, end, s.now())
}

func (s *ReportService) Run(ctx context.Context, q report.Query) (*report.Result, error) {
	records, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	res := report.Run(records, q)
	return &res, nil
}

// Export writes every record matching q, in q's order, ignoring paging.
func (s *ReportService) Export(ctx context.Context, q report.Query, format export.Format, w io.Writer) error {
	records, err := s.records(ctx)
	if err != nil {
		return err
	}
	filtered := report.Filter(records, q)
	report.Sort(filtered, q.SortBy, q.Direction)
	return export.Report(w, format, filtered)
}

func (s *ReportService) Trend(ctx context.Context, timeRange string) (report.Trend, error) {
	records, err := s.records(ctx)
	if err != nil {
		return report.Trend{}, err
	}
	return report.BuildTrend(records, timeRange, s.now())
}
