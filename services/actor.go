package services

import (
	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity is the authenticated caller of a workflow operation.
type Identity struct {
	ID   primitive.ObjectID
	Role models.Actor
}

func (id Identity) is(role models.Actor) bool {
	return !id.ID.IsZero() && id.Role == role
}
