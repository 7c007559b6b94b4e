package repository

import (
	"context"
	"fmt"
	"time"

	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepo struct {
	collection *mongo.Collection
}

func NewSessionRepo(db *mongo.Database) *SessionRepo {
	return &SessionRepo{collection: db.Collection("verification_sessions")}
}

func (r *SessionRepo) Create(ctx context.Context, session *models.VerificationSession) error {
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("cannot create verification session: %w", err)
	}
	return nil
}

func (r *SessionRepo) FindLive(ctx context.Context, orderID primitive.ObjectID, now time.Time) ([]models.VerificationSession, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"order_id":   orderID,
		"status":     models.SessionActive,
		"expires_at": bson.M{"$gt": now},
	})
	if err != nil {
		return nil, fmt.Errorf("cannot find verification sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.VerificationSession
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode verification sessions: %w", err)
	}
	return result, nil
}

// ExpireActive ends every active session of the order as of now.
func (r *SessionRepo) ExpireActive(ctx context.Context, orderID primitive.ObjectID, now time.Time) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"order_id": orderID, "status": models.SessionActive},
		bson.M{"$set": bson.M{"status": models.SessionExpired, "expires_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("cannot expire verification sessions: %w", err)
	}
	return result.ModifiedCount, nil
}
