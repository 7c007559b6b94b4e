package services

import "errors"

var (
	ErrUnauthenticated        = errors.New("not logged in")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrNoMatchingItems        = errors.New("no matching cart items")
	ErrMixedRestaurantCart    = errors.New("cart must contain items from a single restaurant")
	ErrRestaurantUnresolvable = errors.New("could not determine restaurant for cart items")
	ErrRestaurantNotFound     = errors.New("restaurant not found")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("invalid request")
	ErrUnexpected             = errors.New("unexpected error")
)
