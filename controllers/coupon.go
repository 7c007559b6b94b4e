package controllers

import (
	"net/http"
	"time"

	"food-delivery/middleware"
	"food-delivery/models"
	"food-delivery/services"
	"food-delivery/utils"
)

const defaultCouponValidity = 7 * 24 * time.Hour

type CouponController struct {
	Coupons *services.CouponService
}

func NewCouponController(coupons *services.CouponService) *CouponController {
	return &CouponController{Coupons: coupons}
}

// IssueCoupon hands the caller a reward coupon. Omitted fields default to 10% for 7 days.
func (cc *CouponController) IssueCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code            string `json:"code"`
		DiscountPercent *int   `json:"discountPercent"`
		ValidDays       *int   `json:"validDays"`
	}
	if err := decodeOptionalJSON(r, &req); err != nil {
		utils.WriteError(w, "issue coupon", err)
		return
	}
	issue := services.IssueCouponRequest{Code: req.Code, DiscountPercent: 10, ValidFor: defaultCouponValidity}
	if req.DiscountPercent != nil {
		issue.DiscountPercent = *req.DiscountPercent
	}
	if req.ValidDays != nil {
		issue.ValidFor = time.Duration(*req.ValidDays) * 24 * time.Hour
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	coupon, err := cc.Coupons.Issue(ctx, middleware.Identity(r), issue)
	if err != nil {
		utils.WriteError(w, "issue coupon", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, coupon)
}

func (cc *CouponController) GetCoupons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	coupons, err := cc.Coupons.List(ctx, middleware.Identity(r))
	if err != nil {
		utils.WriteError(w, "list coupons", err)
		return
	}
	if coupons == nil {
		coupons = []models.Coupon{}
	}
	utils.WriteJSON(w, http.StatusOK, coupons)
}
