package services_test

import (
	"context"
	"testing"
	"time"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDelivery_ListPendingForDriver(t *testing.T) {
	f := newFixture(t)
	driver := f.driver(t, true)
	r := f.restaurant(t, 2.99)

	preparing := f.order(t, r.ID, models.StatusPreparing, &driver.ID)
	ready := f.order(t, r.ID, models.StatusReadyForPickup, &driver.ID)
	out := f.order(t, r.ID, models.StatusOutForDelivery, &driver.ID)
	f.order(t, r.ID, models.StatusDelivered, &driver.ID)
	f.order(t, r.ID, models.StatusCancelled, &driver.ID)
	other := f.driver(t, true)
	f.order(t, r.ID, models.StatusPreparing, &other.ID)

	pending, err := f.delivery.ListPendingForDriver(context.Background(), driver)
	require.NoError(t, err)

	var ids []primitive.ObjectID
	for _, o := range pending {
		ids = append(ids, o.ID)
	}
	assert.ElementsMatch(t, []primitive.ObjectID{preparing.ID, ready.ID, out.ID}, ids)

	_, err = f.delivery.ListPendingForDriver(context.Background(), f.customer)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestDelivery_MarkDeliveredRequiresOutForDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.driver(t, true)
	r := f.restaurant(t, 2.99)
	restaurant := services.Identity{ID: r.ID, Role: models.ActorRestaurant}
	order := f.order(t, r.ID, models.StatusReadyForPickup, &driver.ID)

	_, err := f.delivery.MarkDelivered(ctx, driver, order.ID)
	require.ErrorIs(t, err, services.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "out for delivery")

	_, err = f.orders.UpdateStatus(ctx, restaurant, order.ID, string(models.StatusOutForDelivery))
	require.NoError(t, err)

	session, err := f.delivery.StartVerification(ctx, driver, order.ID, models.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, models.SessionActive, session.Status)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	delivered, err := f.delivery.MarkDelivered(ctx, driver, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)

	stored, err := f.store.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, stored.Status)

	sessions := f.store.Sessions.ByOrder(order.ID)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.SessionExpired, sessions[0].Status)
	assert.False(t, sessions[0].ExpiresAt.After(time.Now()))

	_, err = f.delivery.MarkDelivered(ctx, driver, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition, "delivered is terminal")
	assert.Contains(t, f.events.types(), models.EventOrderDelivered)
}

func TestDelivery_MarkDeliveredRejectsEveryOtherStatus(t *testing.T) {
	for _, status := range []models.Status{
		models.StatusPlaced,
		models.StatusPreparing,
		models.StatusReadyForPickup,
		models.StatusDelivered,
		models.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t)
			driver := f.driver(t, true)
			order := f.order(t, primitive.NewObjectID(), status, &driver.ID)

			_, err := f.delivery.MarkDelivered(context.Background(), driver, order.ID)
			assert.ErrorIs(t, err, services.ErrInvalidTransition)
		})
	}
}

func TestDelivery_MarkDeliveredChecksOwnership(t *testing.T) {
	f := newFixture(t)
	driver := f.driver(t, true)
	other := f.driver(t, true)
	order := f.order(t, primitive.NewObjectID(), models.StatusOutForDelivery, &other.ID)

	_, err := f.delivery.MarkDelivered(context.Background(), driver, order.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.delivery.MarkDelivered(context.Background(), driver, primitive.NewObjectID())
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.delivery.StartVerification(context.Background(), driver, order.ID, models.DifficultyEasy)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDelivery_RequiredVerification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gated := services.NewDeliveryService(services.DeliveryDeps{
		Orders:   f.store.Orders,
		Sessions: f.store.Sessions,
		Drivers:  f.store.Accounts,
	}, true)
	driver := f.driver(t, true)
	order := f.order(t, primitive.NewObjectID(), models.StatusOutForDelivery, &driver.ID)

	_, err := gated.MarkDelivered(ctx, driver, order.ID)
	require.ErrorIs(t, err, services.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "verification")

	_, err = gated.StartVerification(ctx, driver, order.ID, models.DifficultyHard)
	require.NoError(t, err)

	delivered, err := gated.MarkDelivered(ctx, driver, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
}

func TestDelivery_ClaimOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.driver(t, true)
	rival := f.driver(t, true)
	r := f.restaurant(t, 1)
	order := f.order(t, r.ID, models.StatusPreparing, nil)
	late := f.order(t, r.ID, models.StatusOutForDelivery, nil)

	available, err := f.delivery.ListAvailable(ctx, driver)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, order.ID, available[0].ID)

	claimed, err := f.delivery.ClaimOrder(ctx, driver, order.ID)
	require.NoError(t, err)
	assert.True(t, claimed.AssignedTo(driver.ID))

	again, err := f.delivery.ClaimOrder(ctx, driver, order.ID)
	require.NoError(t, err, "claiming your own order again is a no-op")
	assert.True(t, again.AssignedTo(driver.ID))

	_, err = f.delivery.ClaimOrder(ctx, rival, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = f.delivery.ClaimOrder(ctx, rival, late.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = f.delivery.ClaimOrder(ctx, rival, primitive.NewObjectID())
	assert.ErrorIs(t, err, services.ErrNotFound)

	pending, err := f.delivery.ListPendingForDriver(ctx, driver)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestDelivery_InactiveDriverCannotClaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	driver := f.driver(t, false)
	order := f.order(t, primitive.NewObjectID(), models.StatusPlaced, nil)

	_, err := f.delivery.ClaimOrder(ctx, driver, order.ID)
	assert.ErrorIs(t, err, services.ErrValidation)

	require.NoError(t, f.delivery.SetActive(ctx, driver, true))
	_, err = f.delivery.ClaimOrder(ctx, driver, order.ID)
	assert.NoError(t, err)
}

func TestOrders_RestaurantUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.restaurant(t, 1)
	restaurant := services.Identity{ID: r.ID, Role: models.ActorRestaurant}
	order := f.order(t, r.ID, models.StatusPlaced, nil)

	updated, err := f.orders.UpdateStatus(ctx, restaurant, order.ID, "preparing")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, updated.Status)

	_, err = f.orders.UpdateStatus(ctx, restaurant, order.ID, "Pending")
	assert.ErrorIs(t, err, services.ErrValidation)

	stranger := services.Identity{ID: primitive.NewObjectID(), Role: models.ActorRestaurant}
	_, err = f.orders.UpdateStatus(ctx, stranger, order.ID, "ready_for_pickup")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = f.orders.UpdateStatus(ctx, restaurant, order.ID, "cancelled")
	require.NoError(t, err)
	_, err = f.orders.UpdateStatus(ctx, restaurant, order.ID, "preparing")
	assert.ErrorIs(t, err, services.ErrInvalidTransition, "cancelled is terminal")
}

func TestOrders_RestaurantMarksDelivered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.restaurant(t, 1)
	restaurant := services.Identity{ID: r.ID, Role: models.ActorRestaurant}
	driver := f.driver(t, true)
	order := f.order(t, r.ID, models.StatusOutForDelivery, &driver.ID)
	_, err := f.delivery.StartVerification(ctx, driver, order.ID, models.DifficultyEasy)
	require.NoError(t, err)

	delivered, err := f.orders.UpdateStatus(ctx, restaurant, order.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)
	assert.Contains(t, f.events.types(), models.EventOrderDelivered)

	live, err := f.store.Sessions.FindLive(ctx, order.ID, time.Now())
	require.NoError(t, err)
	assert.Empty(t, live, "delivery expires the verification sessions")

	_, err = f.orders.UpdateStatus(ctx, restaurant, order.ID, "out_for_delivery")
	assert.ErrorIs(t, err, services.ErrInvalidTransition, "delivered is terminal")
}

func TestOrders_CustomerCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	placed := f.order(t, primitive.NewObjectID(), models.StatusPlaced, nil)
	preparing := f.order(t, primitive.NewObjectID(), models.StatusPreparing, nil)

	cancelled, err := f.orders.Cancel(ctx, f.customer, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	_, err = f.orders.Cancel(ctx, f.customer, preparing.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	someoneElse := services.Identity{ID: primitive.NewObjectID(), Role: models.ActorCustomer}
	_, err = f.orders.Cancel(ctx, someoneElse, preparing.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
