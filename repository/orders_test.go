package repository

import (
	"testing"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderFilterMatchesOnlySetFields(t *testing.T) {
	id := primitive.NewObjectID()
	driver := primitive.NewObjectID()

	tests := []struct {
		name   string
		filter services.OrderFilter
		want   bson.M
	}{
		{
			name:   "id only",
			filter: services.OrderFilter{ID: id},
			want:   bson.M{"_id": id},
		},
		{
			name:   "driver compare-and-set",
			filter: services.OrderFilter{ID: id, DriverID: driver, Status: models.StatusOutForDelivery},
			want:   bson.M{"_id": id, "driver_id": driver, "status": models.StatusOutForDelivery},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderFilter(tt.filter))
		})
	}
}

func TestUnassignedFilterRequiresNoDriver(t *testing.T) {
	id := primitive.NewObjectID()
	statuses := []models.Status{models.StatusReadyForPickup, models.StatusOutForDelivery}

	want := bson.M{"_id": id, "driver_id": nil, "status": bson.M{"$in": statuses}}
	assert.Equal(t, want, unassignedFilter(id, statuses))
}
