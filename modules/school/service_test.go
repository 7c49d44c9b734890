package school_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common"
	"github.com/campushq/schoolapi/common/model"
	"github.com/campushq/schoolapi/modules/school"
)

type mockSchoolClient struct {
	getJSONFunc   func(ctx context.Context, endpoint string, entity interface{}, token *oauth2.Token, params map[string]string) error
	postJSONFunc  func(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error)
	putJSONFunc   func(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error)
	patchJSONFunc func(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error)
	delJSONFunc   func(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error)
}

func (m *mockSchoolClient) GetJSON(ctx context.Context, endpoint string, entity interface{}, token *oauth2.Token, params map[string]string) error {
	return m.getJSONFunc(ctx, endpoint, entity, token, params)
}
func (m *mockSchoolClient) GetBytes(ctx context.Context, endpoint string, token *oauth2.Token, params map[string]string) ([]byte, error) {
	panic("GetBytes not implemented in mock")
}
func (m *mockSchoolClient) PostJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error) {
	return m.postJSONFunc(ctx, endpoint, token, body, expectedStatusCodes...)
}
func (m *mockSchoolClient) PutJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error) {
	return m.putJSONFunc(ctx, endpoint, token, body, expectedStatusCodes...)
}
func (m *mockSchoolClient) PatchJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error) {
	return m.patchJSONFunc(ctx, endpoint, token, body, expectedStatusCodes...)
}
func (m *mockSchoolClient) DeleteJSON(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expectedStatusCodes ...int) ([]byte, error) {
	return m.delJSONFunc(ctx, endpoint, token, body, expectedStatusCodes...)
}
func (m *mockSchoolClient) DoRequest(ctx context.Context, method, urlStr string, token *oauth2.Token, body io.Reader, expectedStatus ...int) ([]byte, error) {
	panic("DoRequest not implemented in mock")
}
func (m *mockSchoolClient) Stats() school.RequestStats { return school.RequestStats{} }

func TestService_ListStudents(t *testing.T) {
	mClient := &mockSchoolClient{
		getJSONFunc: func(ctx context.Context, endpoint string, entity interface{}, token *oauth2.Token, params map[string]string) error {
			require.Equal(t, "students/", endpoint)
			raw := `[{"user": {"id": 1, "username": "a", "role": "student"}, "school_class": 2}]`
			return json.Unmarshal([]byte(raw), entity)
		},
	}
	svc := school.NewSchoolService(mClient)

	students, err := svc.ListStudents(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, int64(1), students[0].ID())
}

func TestService_GetStudent_NotFound(t *testing.T) {
	mClient := &mockSchoolClient{
		getJSONFunc: func(ctx context.Context, endpoint string, entity interface{}, token *oauth2.Token, params map[string]string) error {
			require.Equal(t, "students/99/", endpoint)
			return &common.HTTPError{StatusCode: http.StatusNotFound, Body: []byte(`{"detail": "Not found."}`)}
		},
	}
	svc := school.NewSchoolService(mClient)

	_, err := svc.GetStudent(context.Background(), 99, nil)
	require.Error(t, err)

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr, "transport errors are normalized into APIError")
	assert.Equal(t, "Not found.", apiErr.Message)
	assert.True(t, school.IsNotFound(err))
}

func TestService_CreateStudent(t *testing.T) {
	mClient := &mockSchoolClient{
		postJSONFunc: func(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expected ...int) ([]byte, error) {
			require.Equal(t, "students/", endpoint)
			assert.Empty(t, expected, "create relies on the client's 201 default")

			var payload model.Student
			require.NoError(t, json.NewDecoder(body).Decode(&payload))
			assert.Equal(t, "newkid", payload.User.Username)

			return []byte(`{"user": {"id": 5, "username": "newkid", "role": "student"}, "school_class": null}`), nil
		},
	}
	svc := school.NewSchoolService(mClient)

	created, err := svc.CreateStudent(context.Background(), model.Student{
		User: model.User{Username: "newkid", Role: model.RoleStudent},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID())
}

func TestService_PayFee(t *testing.T) {
	mClient := &mockSchoolClient{
		postJSONFunc: func(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expected ...int) ([]byte, error) {
			require.Equal(t, "fees/42/pay/", endpoint)
			require.Equal(t, []int{http.StatusOK}, expected, "pay returns 200, not 201")
			return []byte(`{"status": "Payment successful"}`), nil
		},
	}
	svc := school.NewSchoolService(mClient)

	err := svc.PayFee(context.Background(), 42, nil)
	assert.NoError(t, err)
}

func TestService_SetLeaveStatus(t *testing.T) {
	mClient := &mockSchoolClient{
		patchJSONFunc: func(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expected ...int) ([]byte, error) {
			require.Equal(t, "leaves/7/", endpoint)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(body).Decode(&payload))
			assert.Equal(t, "approved", payload["status"])

			return []byte(`{"id": 7, "start_date": "2026-05-01", "end_date": "2026-05-03", "reason": "family", "status": "approved"}`), nil
		},
	}
	svc := school.NewSchoolService(mClient)

	leave, err := svc.SetLeaveStatus(context.Background(), 7, model.LeaveApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, model.LeaveApproved, leave.Status)
}

func TestService_GetAttendanceByClass(t *testing.T) {
	mClient := &mockSchoolClient{
		getJSONFunc: func(ctx context.Context, endpoint string, entity interface{}, token *oauth2.Token, params map[string]string) error {
			require.Equal(t, "attendance/class/3/", endpoint)
			require.Equal(t, map[string]string{"date": "2026-01-12"}, params)
			raw := `[{"id": 1, "student": 12, "date": "2026-01-12", "status": "present"}]`
			return json.Unmarshal([]byte(raw), entity)
		},
	}
	svc := school.NewSchoolService(mClient)

	records, err := svc.GetAttendanceByClass(context.Background(), 3, model.NewDate(2026, 1, 12), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.AttendancePresent, records[0].Status)
}

func TestService_GetAttendanceByClass_NoDate(t *testing.T) {
	mClient := &mockSchoolClient{
		getJSONFunc: func(ctx context.Context, endpoint string, entity interface{}, token *oauth2.Token, params map[string]string) error {
			assert.Nil(t, params, "zero date should not produce a date param")
			return json.Unmarshal([]byte(`[]`), entity)
		},
	}
	svc := school.NewSchoolService(mClient)

	_, err := svc.GetAttendanceByClass(context.Background(), 3, model.Date{}, nil)
	require.NoError(t, err)
}

func TestService_DeleteClass(t *testing.T) {
	mClient := &mockSchoolClient{
		delJSONFunc: func(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expected ...int) ([]byte, error) {
			require.Equal(t, "classes/3/", endpoint)
			return nil, nil
		},
	}
	svc := school.NewSchoolService(mClient)

	assert.NoError(t, svc.DeleteClass(context.Background(), 3, nil))
}

func TestService_GetFeesReport(t *testing.T) {
	mClient := &mockSchoolClient{
		getJSONFunc: func(ctx context.Context, endpoint string, entity interface{}, token *oauth2.Token, params map[string]string) error {
			require.Equal(t, "reports/fees/", endpoint)
			require.Equal(t, map[string]string{"class": "3"}, params)
			raw := `{"report_type": "fees", "filters": {"class": "3"}, "data": "..."}`
			return json.Unmarshal([]byte(raw), entity)
		},
	}
	svc := school.NewSchoolService(mClient)

	report, err := svc.GetFeesReport(context.Background(), map[string]string{"class": "3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "fees", report.ReportType)
}

func TestService_UpdateStudent_ValidationError(t *testing.T) {
	mClient := &mockSchoolClient{
		putJSONFunc: func(ctx context.Context, endpoint string, token *oauth2.Token, body io.Reader, expected ...int) ([]byte, error) {
			require.Equal(t, "students/5/", endpoint)
			return nil, &common.HTTPError{
				StatusCode: http.StatusBadRequest,
				Body:       []byte(`{"school_class": ["Invalid pk \"99\" - object does not exist."]}`),
			}
		},
	}
	svc := school.NewSchoolService(mClient)

	badClass := int64(99)
	_, err := svc.UpdateStudent(context.Background(), model.Student{
		User:        model.User{ID: 5},
		SchoolClass: &badClass,
	}, nil)

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Fields, "school_class")
}
