package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus is the state of a delivery verification session.
type SessionStatus string

const (
	SessionActive  SessionStatus = "ACTIVE"
	SessionExpired SessionStatus = "EXPIRED"
)

// Difficulty selects how long a verification window stays open.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func ParseDifficulty(raw string) (Difficulty, error) {
	if raw == "" {
		return DifficultyEasy, nil
	}
	d := Difficulty(strings.ToUpper(raw))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", raw)
}

// Window is how long a session of this difficulty stays active.
func (d Difficulty) Window() time.Duration {
	switch d {
	case DifficultyMedium:
		return 20 * time.Minute
	case DifficultyHard:
		return 30 * time.Minute
	default:
		return 10 * time.Minute
	}
}

// VerificationSession gates the final delivery step of an order
type VerificationSession struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID    primitive.ObjectID `bson:"order_id" json:"order_id"`
	CustomerID primitive.ObjectID `bson:"customer_id" json:"customer_id"`
	Status     SessionStatus      `bson:"status" json:"status"`
	Difficulty Difficulty         `bson:"difficulty" json:"difficulty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt  time.Time          `bson:"expires_at" json:"expires_at"`
}

// Live reports whether the session is active and unexpired at now.
func (s *VerificationSession) Live(now time.Time) bool {
	return s.Status == SessionActive && s.ExpiresAt.After(now)
}
