package models

import "fmt"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPlaced         Status = "placed"
	StatusPreparing      Status = "preparing"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// Progression lists the statuses in the order an order normally moves through them.
var Progression = []Status{
	StatusPlaced,
	StatusPreparing,
	StatusReadyForPickup,
	StatusOutForDelivery,
	StatusDelivered,
}

// DriverActionable are the statuses in which an assigned order still needs the driver.
var DriverActionable = []Status{StatusPreparing, StatusReadyForPickup, StatusOutForDelivery}

// Claimable are the statuses in which a driver may still be assigned.
var Claimable = []Status{StatusPlaced, StatusPreparing, StatusReadyForPickup}

// Actor identifies who is driving a status change.
type Actor string

const (
	ActorCustomer   Actor = "customer"
	ActorRestaurant Actor = "restaurant"
	ActorDriver     Actor = "driver"
)

// transitions maps actor -> from -> allowed targets.
var transitions = map[Actor]map[Status][]Status{
	ActorRestaurant: {
		StatusPlaced:         {StatusPreparing, StatusReadyForPickup, StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusPreparing:      {StatusPlaced, StatusReadyForPickup, StatusOutForDelivery, StatusDelivered, StatusCancelled},
		StatusReadyForPickup: {StatusPlaced, StatusPreparing, StatusOutForDelivery, StatusDelivered},
		StatusOutForDelivery: {StatusPlaced, StatusPreparing, StatusReadyForPickup, StatusDelivered},
	},
	ActorDriver: {
		StatusOutForDelivery: {StatusDelivered},
	},
	ActorCustomer: {
		StatusPlaced: {StatusCancelled},
	},
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	switch s {
	case StatusPlaced, StatusPreparing, StatusReadyForPickup, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return s, nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// In reports whether s is one of set.
func (s Status) In(set []Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

// CanTransition reports whether actor may move an order from one status to another.
func CanTransition(actor Actor, from, to Status) bool {
	return to.In(transitions[actor][from])
}
