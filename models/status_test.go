package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		from  Status
		to    Status
		want  bool
	}{
		{"driver_delivers_out_for_delivery", ActorDriver, StatusOutForDelivery, StatusDelivered, true},
		{"driver_cannot_deliver_ready", ActorDriver, StatusReadyForPickup, StatusDelivered, false},
		{"driver_cannot_deliver_placed", ActorDriver, StatusPlaced, StatusDelivered, false},
		{"restaurant_moves_forward", ActorRestaurant, StatusReadyForPickup, StatusOutForDelivery, true},
		{"restaurant_skips_ahead", ActorRestaurant, StatusPlaced, StatusOutForDelivery, true},
		{"restaurant_delivers", ActorRestaurant, StatusOutForDelivery, StatusDelivered, true},
		{"restaurant_cancels_early", ActorRestaurant, StatusPreparing, StatusCancelled, true},
		{"restaurant_cannot_cancel_late", ActorRestaurant, StatusOutForDelivery, StatusCancelled, false},
		{"nothing_leaves_delivered", ActorRestaurant, StatusDelivered, StatusPlaced, false},
		{"nothing_leaves_cancelled", ActorRestaurant, StatusCancelled, StatusPreparing, false},
		{"customer_cancels_placed", ActorCustomer, StatusPlaced, StatusCancelled, true},
		{"customer_cannot_cancel_preparing", ActorCustomer, StatusPreparing, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.actor, tt.from, tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("out_for_delivery")
	assert.NoError(t, err)
	assert.Equal(t, StatusOutForDelivery, s)

	_, err = ParseStatus("Pending")
	assert.Error(t, err)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusOutForDelivery.Terminal())
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("")
	assert.NoError(t, err)
	assert.Equal(t, DifficultyEasy, d)

	d, err = ParseDifficulty("hard")
	assert.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	_, err = ParseDifficulty("impossible")
	assert.Error(t, err)
}
