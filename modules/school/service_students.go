package school

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common/model"
)

// ListStudents calls GET /students/
func (s *schoolService) ListStudents(ctx context.Context, token *oauth2.Token) ([]model.Student, error) {
	var students []model.Student
	if err := s.getList(ctx, "students/", &students, token, nil); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent calls GET /students/{id}/
func (s *schoolService) GetStudent(ctx context.Context, studentID int64, token *oauth2.Token) (*model.Student, error) {
	var student model.Student
	endpoint := fmt.Sprintf("students/%d/", studentID)
	if err := s.getList(ctx, endpoint, &student, token, nil); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateStudent calls POST /students/
func (s *schoolService) CreateStudent(ctx context.Context, student model.Student, token *oauth2.Token) (*model.Student, error) {
	var created model.Student
	if err := s.postEntity(ctx, "students/", student, &created, token); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStudent calls PUT /students/{id}/
func (s *schoolService) UpdateStudent(ctx context.Context, student model.Student, token *oauth2.Token) (*model.Student, error) {
	var updated model.Student
	endpoint := fmt.Sprintf("students/%d/", student.ID())
	if err := s.putEntity(ctx, endpoint, student, &updated, token); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStudent calls DELETE /students/{id}/
func (s *schoolService) DeleteStudent(ctx context.Context, studentID int64, token *oauth2.Token) error {
	return s.deleteEntity(ctx, fmt.Sprintf("students/%d/", studentID), token)
}

// GetStudentFees calls GET /students/{id}/fees/
func (s *schoolService) GetStudentFees(ctx context.Context, studentID int64, token *oauth2.Token) ([]model.Fee, error) {
	var fees []model.Fee
	endpoint := fmt.Sprintf("students/%d/fees/", studentID)
	if err := s.getList(ctx, endpoint, &fees, token, nil); err != nil {
		return nil, err
	}
	return fees, nil
}

// GetStudentAttendance calls GET /students/{id}/attendance/
func (s *schoolService) GetStudentAttendance(ctx context.Context, studentID int64, token *oauth2.Token) ([]model.Attendance, error) {
	var records []model.Attendance
	endpoint := fmt.Sprintf("students/%d/attendance/", studentID)
	if err := s.getList(ctx, endpoint, &records, token, nil); err != nil {
		return nil, err
	}
	return records, nil
}
