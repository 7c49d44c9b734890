package school

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common/model"
)

// Report endpoints accept arbitrary filter params (class, date ranges) which
// the backend echoes back alongside the generated data.

// GetAttendanceReport calls GET /reports/attendance/
func (s *schoolService) GetAttendanceReport(ctx context.Context, filters map[string]string, token *oauth2.Token) (*model.Report, error) {
	return s.getReport(ctx, "reports/attendance/", filters, token)
}

// GetFeesReport calls GET /reports/fees/
func (s *schoolService) GetFeesReport(ctx context.Context, filters map[string]string, token *oauth2.Token) (*model.Report, error) {
	return s.getReport(ctx, "reports/fees/", filters, token)
}

// GetAcademicReport calls GET /reports/academic/
func (s *schoolService) GetAcademicReport(ctx context.Context, filters map[string]string, token *oauth2.Token) (*model.Report, error) {
	return s.getReport(ctx, "reports/academic/", filters, token)
}

func (s *schoolService) getReport(ctx context.Context, endpoint string, filters map[string]string, token *oauth2.Token) (*model.Report, error) {
	var report model.Report
	if err := s.getList(ctx, endpoint, &report, token, filters); err != nil {
		return nil, err
	}
	return &report, nil
}
