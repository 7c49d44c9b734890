package school

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common/model"
)

// ListClasses calls GET /classes/
func (s *schoolService) ListClasses(ctx context.Context, token *oauth2.Token) ([]model.SchoolClass, error) {
	var classes []model.SchoolClass
	if err := s.getList(ctx, "classes/", &classes, token, nil); err != nil {
		return nil, err
	}
	return classes, nil
}

// GetClass calls GET /classes/{id}/
func (s *schoolService) GetClass(ctx context.Context, classID int64, token *oauth2.Token) (*model.SchoolClass, error) {
	var class model.SchoolClass
	endpoint := fmt.Sprintf("classes/%d/", classID)
	if err := s.getList(ctx, endpoint, &class, token, nil); err != nil {
		return nil, err
	}
	return &class, nil
}

// CreateClass calls POST /classes/
func (s *schoolService) CreateClass(ctx context.Context, class model.SchoolClass, token *oauth2.Token) (*model.SchoolClass, error) {
	var created model.SchoolClass
	if err := s.postEntity(ctx, "classes/", class, &created, token); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateClass calls PUT /classes/{id}/
func (s *schoolService) UpdateClass(ctx context.Context, class model.SchoolClass, token *oauth2.Token) (*model.SchoolClass, error) {
	var updated model.SchoolClass
	endpoint := fmt.Sprintf("classes/%d/", class.ID)
	if err := s.putEntity(ctx, endpoint, class, &updated, token); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteClass calls DELETE /classes/{id}/
func (s *schoolService) DeleteClass(ctx context.Context, classID int64, token *oauth2.Token) error {
	return s.deleteEntity(ctx, fmt.Sprintf("classes/%d/", classID), token)
}

// GetClassStudents calls GET /classes/{id}/students/
func (s *schoolService) GetClassStudents(ctx context.Context, classID int64, token *oauth2.Token) ([]model.Student, error) {
	var students []model.Student
	endpoint := fmt.Sprintf("classes/%d/students/", classID)
	if err := s.getList(ctx, endpoint, &students, token, nil); err != nil {
		return nil, err
	}
	return students, nil
}

// GetClassTimetable calls GET /classes/{id}/timetable/
func (s *schoolService) GetClassTimetable(ctx context.Context, classID int64, token *oauth2.Token) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	endpoint := fmt.Sprintf("classes/%d/timetable/", classID)
	if err := s.getList(ctx, endpoint, &entries, token, nil); err != nil {
		return nil, err
	}
	return entries, nil
}
