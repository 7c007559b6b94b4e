package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// RequestTimeout bounds the storage work of one request.
var RequestTimeout = 5 * time.Second

// CatalogBackend reads and edits restaurants and menus.
type CatalogBackend interface {
	services.Catalog
	services.MenuStore
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), RequestTimeout)
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid input", services.ErrValidation)
	}
	return nil
}

// decodeOptionalJSON accepts an empty body.
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid input", services.ErrValidation)
	}
	return nil
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid %s", services.ErrValidation, name)
	}
	return id, nil
}

// requireFields takes name/value pairs and reports the names whose value is blank.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", services.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %w", services.ErrUnexpected, err)
	}
	return string(hashed), nil
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *credentials) validate() error {
	c.Email = normalizeEmail(c.Email)
	return requireFields("email", c.Email, "password", c.Password)
}

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", services.ErrUnauthenticated)

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", services.ErrUnexpected, op, err)
}

func duplicateEmail() error {
	return fmt.Errorf("email already registered: %w", models.ErrDuplicate)
}

func validation(err error) error {
	return fmt.Errorf("%w: %v", services.ErrValidation, err)
}
