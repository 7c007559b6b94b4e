package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-delivery/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCouponRequest describes a coupon to hand out. An empty Code is generated.
type IssueCouponRequest struct {
	Code            string
	DiscountPercent int
	ValidFor        time.Duration
}

// CouponService issues and lists customers' coupons.
type CouponService struct {
	coupons CouponIssuer
	now     func() time.Time
}

func NewCouponService(coupons CouponIssuer) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

// Issue creates a coupon for the calling customer.
func (s *CouponService) Issue(ctx context.Context, who Identity, req IssueCouponRequest) (*models.Coupon, error) {
	if !who.is(models.ActorCustomer) {
		return nil, ErrUnauthenticated
	}
	if req.DiscountPercent < 1 || req.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w: discount percent must be between 1 and 100", ErrValidation)
	}
	if req.ValidFor <= 0 {
		return nil, fmt.Errorf("%w: coupon must expire in the future", ErrValidation)
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		code = "REWARD-" + strings.ToUpper(uuid.NewString()[:8])
	}

	now := s.now()
	coupon := &models.Coupon{
		ID:              primitive.NewObjectID(),
		Code:            code,
		CustomerID:      who.ID,
		DiscountPercent: req.DiscountPercent,
		ExpiresAt:       now.Add(req.ValidFor),
		CreatedAt:       now,
	}
	if err := s.coupons.Issue(ctx, coupon); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, fmt.Errorf("%w: coupon %s", models.ErrDuplicate, code)
		}
		return nil, unexpected("issue coupon", err)
	}
	return coupon, nil
}

// List returns the calling customer's coupons.
func (s *CouponService) List(ctx context.Context, who Identity) ([]models.Coupon, error) {
	if !who.is(models.ActorCustomer) {
		return nil, ErrUnauthenticated
	}
	coupons, err := s.coupons.ListByCustomer(ctx, who.ID)
	if err != nil {
		return nil, unexpected("list coupons", err)
	}
	return coupons, nil
}
