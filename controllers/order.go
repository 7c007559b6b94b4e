package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"food-delivery/middleware"
	"food-delivery/models"
	"food-delivery/services"
	"food-delivery/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderController handles customers' orders
type OrderController struct {
	Checkout     *services.CheckoutService
	Orders       *services.OrderService
	Accounts     services.AccountStore
	EmailService *utils.EmailService
}

func NewOrderController(checkout *services.CheckoutService, orders *services.OrderService, accounts services.AccountStore, emailService *utils.EmailService) *OrderController {
	return &OrderController{
		Checkout:     checkout,
		Orders:       orders,
		Accounts:     accounts,
		EmailService: emailService,
	}
}

type checkoutRequest struct {
	LineIDs    []string `json:"lineIds"`
	CouponCode string   `json:"couponCode"`
}

func (c checkoutRequest) toService() (services.CheckoutRequest, error) {
	req := services.CheckoutRequest{CouponCode: c.CouponCode}
	for _, raw := range c.LineIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return req, validation(err)
		}
		req.LineIDs = append(req.LineIDs, id)
	}
	return req, nil
}

type placedOrder struct {
	*models.Order
	DiscountApplied string `json:"discount_applied,omitempty"`
}

// CreateOrder checks out the cart, or the lines named in the body
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body checkoutRequest
	if err := decodeOptionalJSON(r, &body); err != nil {
		utils.WriteError(w, "checkout", err)
		return
	}
	req, err := body.toService()
	if err != nil {
		utils.WriteError(w, "checkout", err)
		return
	}

	result, err := oc.place(r, req)
	if err != nil {
		utils.WriteError(w, "checkout", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, placedOrder{Order: result.Order, DiscountApplied: result.Discount})
}

func (oc *OrderController) place(r *http.Request, req services.CheckoutRequest) (*services.CheckoutResult, error) {
	ctx, cancel := requestContext(r)
	defer cancel()

	who := middleware.Identity(r)
	result, err := oc.Checkout.Checkout(ctx, who, req)
	middleware.RecordOrderOperation("checkout", err == nil)
	if err != nil {
		return nil, err
	}
	oc.sendConfirmation(who.ID, *result.Order)
	return result, nil
}

// sendConfirmation mails the receipt in the background; failures are only logged.
func (oc *OrderController) sendConfirmation(customerID primitive.ObjectID, order models.Order) {
	if oc.EmailService == nil || oc.Accounts == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		customer, err := oc.Accounts.GetCustomer(ctx, customerID)
		if err != nil || customer == nil {
			log.Printf("Failed to load customer %s for order confirmation: %v", customerID.Hex(), err)
			return
		}
		if err := oc.EmailService.SendOrderConfirmationEmail(customer.Email, order); err != nil {
			log.Printf("Failed to send email to %s: %v", customer.Email, err)
		}
	}()
}

// GetOrders lists the customer's orders, newest first
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	orders, err := oc.Orders.ListForCustomer(ctx, middleware.Identity(r))
	if err != nil {
		utils.WriteError(w, "list orders", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "get order", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	order, err := oc.Orders.GetForCustomer(ctx, middleware.Identity(r), id)
	if err != nil {
		utils.WriteError(w, "get order", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// CancelOrder cancels an order the restaurant has not started yet
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "cancel order", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	order, err := oc.Orders.Cancel(ctx, middleware.Identity(r), id)
	middleware.RecordOrderOperation("cancel", err == nil)
	if err != nil {
		utils.WriteError(w, "cancel order", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "order": order})
}

// MockCheckout simulates a successful payment for the whole cart
func (oc *OrderController) MockCheckout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CouponCode string `json:"couponCode"`
	}
	if err := decodeOptionalJSON(r, &body); err != nil {
		utils.WriteError(w, "mock checkout", err)
		return
	}

	result, err := oc.place(r, services.CheckoutRequest{CouponCode: body.CouponCode})
	if err != nil {
		utils.WriteError(w, "mock checkout", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, models.PaymentReceipt{
		OK:      true,
		Message: "Payment successful! Your order has been placed.",
		OrderID: result.Order.ID,
		Amount:  result.Order.Total,
		Status:  result.Order.PaymentStatus,
	})
}
