package school

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common/model"
)

// ListAttendance calls GET /attendance/
func (s *schoolService) ListAttendance(ctx context.Context, token *oauth2.Token) ([]model.Attendance, error) {
	var records []model.Attendance
	if err := s.getList(ctx, "attendance/", &records, token, nil); err != nil {
		return nil, err
	}
	return records, nil
}

// MarkAttendance calls POST /attendance/. The backend enforces one record
// per student per date.
func (s *schoolService) MarkAttendance(ctx context.Context, record model.Attendance, token *oauth2.Token) (*model.Attendance, error) {
	var created model.Attendance
	if err := s.postEntity(ctx, "attendance/", record, &created, token); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAttendance calls PUT /attendance/{id}/
func (s *schoolService) UpdateAttendance(ctx context.Context, record model.Attendance, token *oauth2.Token) (*model.Attendance, error) {
	var updated model.Attendance
	endpoint := fmt.Sprintf("attendance/%d/", record.ID)
	if err := s.putEntity(ctx, endpoint, record, &updated, token); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetAttendanceByClass calls GET /attendance/class/{classID}/, optionally
// filtered to a single date.
func (s *schoolService) GetAttendanceByClass(ctx context.Context, classID int64, date model.Date, token *oauth2.Token) ([]model.Attendance, error) {
	var records []model.Attendance
	endpoint := fmt.Sprintf("attendance/class/%d/", classID)
	var params map[string]string
	if !date.IsZero() {
		params = map[string]string{"date": date.String()}
	}
	if err := s.getList(ctx, endpoint, &records, token, params); err != nil {
		return nil, err
	}
	return records, nil
}
