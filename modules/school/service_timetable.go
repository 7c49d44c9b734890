package school

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common/model"
)

// ListTimetable calls GET /timetable/
func (s *schoolService) ListTimetable(ctx context.Context, token *oauth2.Token) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	if err := s.getList(ctx, "timetable/", &entries, token, nil); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateTimetableEntry calls POST /timetable/
func (s *schoolService) CreateTimetableEntry(ctx context.Context, entry model.TimetableEntry, token *oauth2.Token) (*model.TimetableEntry, error) {
	var created model.TimetableEntry
	if err := s.postEntity(ctx, "timetable/", entry, &created, token); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTimetableEntry calls PUT /timetable/{id}/
func (s *schoolService) UpdateTimetableEntry(ctx context.Context, entry model.TimetableEntry, token *oauth2.Token) (*model.TimetableEntry, error) {
	var updated model.TimetableEntry
	endpoint := fmt.Sprintf("timetable/%d/", entry.ID)
	if err := s.putEntity(ctx, endpoint, entry, &updated, token); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTimetableEntry calls DELETE /timetable/{id}/
func (s *schoolService) DeleteTimetableEntry(ctx context.Context, entryID int64, token *oauth2.Token) error {
	return s.deleteEntity(ctx, fmt.Sprintf("timetable/%d/", entryID), token)
}

// GetTimetableByClass calls GET /timetable/class/{classID}/
func (s *schoolService) GetTimetableByClass(ctx context.Context, classID int64, token *oauth2.Token) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	endpoint := fmt.Sprintf("timetable/class/%d/", classID)
	if err := s.getList(ctx, endpoint, &entries, token, nil); err != nil {
		return nil, err
	}
	return entries, nil
}
