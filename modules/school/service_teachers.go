package school

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common/model"
)

// ListTeachers calls GET /teachers/
func (s *schoolService) ListTeachers(ctx context.Context, token *oauth2.Token) ([]model.Teacher, error) {
	var teachers []model.Teacher
	if err := s.getList(ctx, "teachers/", &teachers, token, nil); err != nil {
		return nil, err
	}
	return teachers, nil
}

// GetTeacher calls GET /teachers/{id}/
func (s *schoolService) GetTeacher(ctx context.Context, teacherID int64, token *oauth2.Token) (*model.Teacher, error) {
	var teacher model.Teacher
	endpoint := fmt.Sprintf("teachers/%d/", teacherID)
	if err := s.getList(ctx, endpoint, &teacher, token, nil); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// CreateTeacher calls POST /teachers/
func (s *schoolService) CreateTeacher(ctx context.Context, teacher model.Teacher, token *oauth2.Token) (*model.Teacher, error) {
	var created model.Teacher
	if err := s.postEntity(ctx, "teachers/", teacher, &created, token); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTeacher calls PUT /teachers/{id}/
func (s *schoolService) UpdateTeacher(ctx context.Context, teacher model.Teacher, token *oauth2.Token) (*model.Teacher, error) {
	var updated model.Teacher
	endpoint := fmt.Sprintf("teachers/%d/", teacher.ID())
	if err := s.putEntity(ctx, endpoint, teacher, &updated, token); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTeacher calls DELETE /teachers/{id}/
func (s *schoolService) DeleteTeacher(ctx context.Context, teacherID int64, token *oauth2.Token) error {
	return s.deleteEntity(ctx, fmt.Sprintf("teachers/%d/", teacherID), token)
}

// GetTeacherClasses calls GET /teachers/{id}/classes/
func (s *schoolService) GetTeacherClasses(ctx context.Context, teacherID int64, token *oauth2.Token) ([]model.SchoolClass, error) {
	var classes []model.SchoolClass
	endpoint := fmt.Sprintf("teachers/%d/classes/", teacherID)
	if err := s.getList(ctx, endpoint, &classes, token, nil); err != nil {
		return nil, err
	}
	return classes, nil
}
