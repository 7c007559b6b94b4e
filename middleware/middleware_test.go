package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"food-delivery/models"
	"food-delivery/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func whoAmI(w http.ResponseWriter, r *http.Request) {
	who := Identity(r)
	w.Write([]byte(string(who.Role) + ":" + who.ID.Hex()))
}

func TestAuthMiddleware(t *testing.T) {
	utils.JwtKey = []byte("middleware-secret")
	id := primitive.NewObjectID()
	token, err := utils.GenerateJWT(id, "ada@example.com", models.ActorCustomer)
	require.NoError(t, err)

	handler := AuthMiddleware(http.HandlerFunc(whoAmI))

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "customer:"+id.Hex(), rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	utils.JwtKey = []byte("middleware-secret")
	token, err := utils.GenerateJWT(primitive.NewObjectID(), "kim@example.com", models.ActorDriver)
	require.NoError(t, err)

	handler := AuthMiddleware(RequireRole(models.ActorRestaurant)(http.HandlerFunc(whoAmI)))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestIdentityWithoutClaims(t *testing.T) {
	who := Identity(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, who.ID.IsZero())
}

func TestPrometheusMiddlewareUsesRouteTemplate(t *testing.T) {
	router := mux.NewRouter()
	router.Use(PrometheusMiddleware)
	router.HandleFunc("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/orders/{id}", "404"))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/abc", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/orders/{id}", "404"))

	assert.Equal(t, before+1, after)
}

func TestRecordOrderOperation(t *testing.T) {
	before := testutil.ToFloat64(orderOperations.WithLabelValues("checkout", "error"))
	RecordOrderOperation("checkout", false)
	assert.Equal(t, before+1, testutil.ToFloat64(orderOperations.WithLabelValues("checkout", "error")))
}
