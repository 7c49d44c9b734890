package school

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common"
	"github.com/campushq/schoolapi/common/model"
)

// SchoolService is the higher-level interface for working with school data.
// Every method takes the caller's bearer token; role-based permissions are
// enforced by the backend.
type SchoolService interface {
	// Students
	ListStudents(ctx context.Context, token *oauth2.Token) ([]model.Student, error)
	GetStudent(ctx context.Context, studentID int64, token *oauth2.Token) (*model.Student, error)
	CreateStudent(ctx context.Context, student model.Student, token *oauth2.Token) (*model.Student, error)
	UpdateStudent(ctx context.Context, student model.Student, token *oauth2.Token) (*model.Student, error)
	DeleteStudent(ctx context.Context, studentID int64, token *oauth2.Token) error
	GetStudentFees(ctx context.Context, studentID int64, token *oauth2.Token) ([]model.Fee, error)
	GetStudentAttendance(ctx context.Context, studentID int64, token *oauth2.Token) ([]model.Attendance, error)

	// Teachers
	ListTeachers(ctx context.Context, token *oauth2.Token) ([]model.Teacher, error)
	GetTeacher(ctx context.Context, teacherID int64, token *oauth2.Token) (*model.Teacher, error)
	CreateTeacher(ctx context.Context, teacher model.Teacher, token *oauth2.Token) (*model.Teacher, error)
	UpdateTeacher(ctx context.Context, teacher model.Teacher, token *oauth2.Token) (*model.Teacher, error)
	DeleteTeacher(ctx context.Context, teacherID int64, token *oauth2.Token) error
	GetTeacherClasses(ctx context.Context, teacherID int64, token *oauth2.Token) ([]model.SchoolClass, error)

	// Classes
	ListClasses(ctx context.Context, token *oauth2.Token) ([]model.SchoolClass, error)
	GetClass(ctx context.Context, classID int64, token *oauth2.Token) (*model.SchoolClass, error)
	CreateClass(ctx context.Context, class model.SchoolClass, token *oauth2.Token) (*model.SchoolClass, error)
	UpdateClass(ctx context.Context, class model.SchoolClass, token *oauth2.Token) (*model.SchoolClass, error)
	DeleteClass(ctx context.Context, classID int64, token *oauth2.Token) error
	GetClassStudents(ctx context.Context, classID int64, token *oauth2.Token) ([]model.Student, error)
	GetClassTimetable(ctx context.Context, classID int64, token *oauth2.Token) ([]model.TimetableEntry, error)

	// Fees
	ListFees(ctx context.Context, token *oauth2.Token) ([]model.Fee, error)
	GetFee(ctx context.Context, feeID int64, token *oauth2.Token) (*model.Fee, error)
	CreateFee(ctx context.Context, fee model.Fee, token *oauth2.Token) (*model.Fee, error)
	UpdateFee(ctx context.Context, fee model.Fee, token *oauth2.Token) (*model.Fee, error)
	PayFee(ctx context.Context, feeID int64, token *oauth2.Token) error

	// Attendance
	ListAttendance(ctx context.Context, token *oauth2.Token) ([]model.Attendance, error)
	MarkAttendance(ctx context.Context, record model.Attendance, token *oauth2.Token) (*model.Attendance, error)
	UpdateAttendance(ctx context.Context, record model.Attendance, token *oauth2.Token) (*model.Attendance, error)
	GetAttendanceByClass(ctx context.Context, classID int64, date model.Date, token *oauth2.Token) ([]model.Attendance, error)

	// Timetable
	ListTimetable(ctx context.Context, token *oauth2.Token) ([]model.TimetableEntry, error)
	CreateTimetableEntry(ctx context.Context, entry model.TimetableEntry, token *oauth2.Token) (*model.TimetableEntry, error)
	UpdateTimetableEntry(ctx context.Context, entry model.TimetableEntry, token *oauth2.Token) (*model.TimetableEntry, error)
	DeleteTimetableEntry(ctx context.Context, entryID int64, token *oauth2.Token) error
	GetTimetableByClass(ctx context.Context, classID int64, token *oauth2.Token) ([]model.TimetableEntry, error)

	// Leave
	ListLeaveRequests(ctx context.Context, token *oauth2.Token) ([]model.LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, leaveID int64, token *oauth2.Token) (*model.LeaveRequest, error)
	SubmitLeaveRequest(ctx context.Context, leave model.LeaveRequest, token *oauth2.Token) (*model.LeaveRequest, error)
	SetLeaveStatus(ctx context.Context, leaveID int64, status model.LeaveStatus, token *oauth2.Token) (*model.LeaveRequest, error)

	// Reports
	GetAttendanceReport(ctx context.Context, filters map[string]string, token *oauth2.Token) (*model.Report, error)
	GetFeesReport(ctx context.Context, filters map[string]string, token *oauth2.Token) (*model.Report, error)
	GetAcademicReport(ctx context.Context, filters map[string]string, token *oauth2.Token) (*model.Report, error)
}

// schoolService is the concrete implementation that uses SchoolClient.
type schoolService struct {
	client SchoolClient
}

// NewSchoolService constructs a SchoolService.
func NewSchoolService(client SchoolClient) SchoolService {
	return &schoolService{
		client: client,
	}
}

// getList fetches a collection endpoint into out.
func (s *schoolService) getList(ctx context.Context, endpoint string, out interface{}, token *oauth2.Token, params map[string]string) error {
	if err := s.client.GetJSON(ctx, endpoint, out, token, params); err != nil {
		return normalizeError(err)
	}
	return nil
}

// postEntity marshals payload, POSTs it, and decodes the created entity into out.
func (s *schoolService) postEntity(ctx context.Context, endpoint string, payload interface{}, out interface{}, token *oauth2.Token, expectedStatus ...int) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	data, err := s.client.PostJSON(ctx, endpoint, token, bytes.NewReader(body), expectedStatus...)
	if err != nil {
		return normalizeError(err)
	}
	if out == nil {
		return nil
	}
	return model.JSONUnmarshal(data, out)
}

// putEntity marshals payload, PUTs it, and decodes the updated entity into out.
func (s *schoolService) putEntity(ctx context.Context, endpoint string, payload interface{}, out interface{}, token *oauth2.Token) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	data, err := s.client.PutJSON(ctx, endpoint, token, bytes.NewReader(body))
	if err != nil {
		return normalizeError(err)
	}
	if out == nil {
		return nil
	}
	return model.JSONUnmarshal(data, out)
}

// patchEntity marshals payload, PATCHes it, and decodes the result into out.
func (s *schoolService) patchEntity(ctx context.Context, endpoint string, payload interface{}, out interface{}, token *oauth2.Token) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	data, err := s.client.PatchJSON(ctx, endpoint, token, bytes.NewReader(body))
	if err != nil {
		return normalizeError(err)
	}
	if out == nil {
		return nil
	}
	return model.JSONUnmarshal(data, out)
}

func (s *schoolService) deleteEntity(ctx context.Context, endpoint string, token *oauth2.Token) error {
	if _, err := s.client.DeleteJSON(ctx, endpoint, token, nil); err != nil {
		return normalizeError(err)
	}
	return nil
}

// normalizeError converts transport-level HTTPErrors into APIErrors carrying
// the backend's decoded message and field errors. Other errors pass through.
func normalizeError(err error) error {
	var httpErr *common.HTTPError
	if errors.As(err, &httpErr) {
		return model.DecodeAPIError(httpErr.StatusCode, httpErr.Body)
	}
	return err
}

// IsNotFound reports whether err is the backend saying the resource does not exist.
func IsNotFound(err error) bool {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	var httpErr *common.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 404
	}
	return false
}
