package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus tracks the (mocked) payment of an order.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// PaymentReceipt is returned by the mock checkout endpoint.
type PaymentReceipt struct {
	OK      bool               `json:"ok"`
	Message string             `json:"message"`
	OrderID primitive.ObjectID `json:"orderId"`
	Amount  float64            `json:"amount"`
	Status  PaymentStatus      `json:"payment_status"`
}
