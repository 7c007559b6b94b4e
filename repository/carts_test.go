package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClaimFilterTakesUnclaimedOrStaleLines(t *testing.T) {
	customer := primitive.NewObjectID()
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	staleBefore := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	want := bson.M{
		"_id":         bson.M{"$in": ids},
		"customer_id": customer,
		"$or": bson.A{
			bson.M{"checkout_token": bson.M{"$exists": false}},
			bson.M{"checkout_token": ""},
			bson.M{"claimed_at": bson.M{"$lte": staleBefore}},
		},
	}
	assert.Equal(t, want, claimFilter(customer, ids, staleBefore))
}
