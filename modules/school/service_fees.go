package school

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common/model"
)

// ListFees calls GET /fees/
func (s *schoolService) ListFees(ctx context.Context, token *oauth2.Token) ([]model.Fee, error) {
	var fees []model.Fee
	if err := s.getList(ctx, "fees/", &fees, token, nil); err != nil {
		return nil, err
	}
	return fees, nil
}

// GetFee calls GET /fees/{id}/
func (s *schoolService) GetFee(ctx context.Context, feeID int64, token *oauth2.Token) (*model.Fee, error) {
	var fee model.Fee
	endpoint := fmt.Sprintf("fees/%d/", feeID)
	if err := s.getList(ctx, endpoint, &fee, token, nil); err != nil {
		return nil, err
	}
	return &fee, nil
}

// CreateFee calls POST /fees/
func (s *schoolService) CreateFee(ctx context.Context, fee model.Fee, token *oauth2.Token) (*model.Fee, error) {
	var created model.Fee
	if err := s.postEntity(ctx, "fees/", fee, &created, token); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateFee calls PUT /fees/{id}/
func (s *schoolService) UpdateFee(ctx context.Context, fee model.Fee, token *oauth2.Token) (*model.Fee, error) {
	var updated model.Fee
	endpoint := fmt.Sprintf("fees/%d/", fee.ID)
	if err := s.putEntity(ctx, endpoint, fee, &updated, token); err != nil {
		return nil, err
	}
	return &updated, nil
}

// PayFee calls POST /fees/{id}/pay/ which marks the fee as paid. Callers
// holding a cached entry for this fee (or the student's fee list) should
// invalidate it afterwards.
func (s *schoolService) PayFee(ctx context.Context, feeID int64, token *oauth2.Token) error {
	endpoint := fmt.Sprintf("fees/%d/pay/", feeID)
	return s.postEntity(ctx, endpoint, struct{}{}, nil, token, http.StatusOK)
}
