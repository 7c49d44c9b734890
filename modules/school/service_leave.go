package school

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common/model"
)

// ListLeaveRequests calls GET /leaves/
func (s *schoolService) ListLeaveRequests(ctx context.Context, token *oauth2.Token) ([]model.LeaveRequest, error) {
	var leaves []model.LeaveRequest
	if err := s.getList(ctx, "leaves/", &leaves, token, nil); err != nil {
		return nil, err
	}
	return leaves, nil
}

// GetLeaveRequest calls GET /leaves/{id}/
func (s *schoolService) GetLeaveRequest(ctx context.Context, leaveID int64, token *oauth2.Token) (*model.LeaveRequest, error) {
	var leave model.LeaveRequest
	endpoint := fmt.Sprintf("leaves/%d/", leaveID)
	if err := s.getList(ctx, endpoint, &leave, token, nil); err != nil {
		return nil, err
	}
	return &leave, nil
}

// SubmitLeaveRequest calls POST /leaves/. The requester is taken from the
// bearer token; leave.User is ignored on the way in.
func (s *schoolService) SubmitLeaveRequest(ctx context.Context, leave model.LeaveRequest, token *oauth2.Token) (*model.LeaveRequest, error) {
	var created model.LeaveRequest
	if err := s.postEntity(ctx, "leaves/", leave, &created, token); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetLeaveStatus approves or rejects a pending request via PATCH /leaves/{id}/
func (s *schoolService) SetLeaveStatus(ctx context.Context, leaveID int64, status model.LeaveStatus, token *oauth2.Token) (*model.LeaveRequest, error) {
	var updated model.LeaveRequest
	endpoint := fmt.Sprintf("leaves/%d/", leaveID)
	payload := map[string]model.LeaveStatus{"status": status}
	if err := s.patchEntity(ctx, endpoint, payload, &updated, token); err != nil {
		return nil, err
	}
	return &updated, nil
}
