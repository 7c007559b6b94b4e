package utils

import (
	"errors"
	"time"

	"food-delivery/models"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JWT Secret Key
var JwtKey = []byte("change-me") // replaced from JWT_SECRET at startup

const tokenLifetime = 24 * time.Hour

// Claims represents the JWT claims. Subject carries the account id.
type Claims struct {
	Email string       `json:"email"`
	Role  models.Actor `json:"role"`
	jwt.StandardClaims
}

// AccountID returns the id the token was issued for.
func (c *Claims) AccountID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Subject)
}

// GenerateJWT generates a JWT token for an account
func GenerateJWT(id primitive.ObjectID, email string, role models.Actor) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			Subject:   id.Hex(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenLifetime).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseJWT validates the signature and expiry of tokenStr.
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
