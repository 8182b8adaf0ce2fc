package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfleet/drivers-api/internal/middleware"
	"github.com/openfleet/drivers-api/internal/model"
	"github.com/openfleet/drivers-api/internal/repository"
)

type failingLister struct{}

func (failingLister) List(ctx context.Context) ([]model.Product, error) {
	return nil, errors.New("database gone")
}

func TestProductList_ReturnsProducts(t *testing.T) {
	t.Parallel()

	h := NewProductHandler(repository.NewMemoryProducts([]model.Product{
		{ID: "product:1", Name: "Fleet Tracker", Price: 49.99},
		{ID: "product:2", Name: "Route Planner", Price: 19.99},
	}))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var products []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "Fleet Tracker", products[0].Name)
	assert.Equal(t, 49.99, products[0].Price)
}

func TestProductList_EmptyCatalog(t *testing.T) {
	t.Parallel()

	h := NewProductHandler(repository.NewMemoryProducts(nil))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestProductList_StoreFailure(t *testing.T) {
	t.Parallel()

	h := NewProductHandler(failingLister{})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// The products route sits behind the auth middleware; verify the guard
// end to end.
func TestProductList_RequiresToken(t *testing.T) {
	t.Parallel()

	authHandler, signer := testAuthHandler(t)
	products := NewProductHandler(repository.NewMemoryProducts([]model.Product{
		{ID: "product:1", Name: "Fleet Tracker", Price: 49.99},
	}))
	guarded := middleware.Auth(signer)(http.HandlerFunc(products.List))

	// No token: rejected.
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Register to obtain a valid access token.
	regRec := postJSON(t, authHandler.Register, "/v1/auth/register", RegisterRequest{
		Email:    "user@example.com",
		Password: "P@ssw0rd1",
	})
	require.Equal(t, http.StatusCreated, regRec.Code)
	pair := decodePair(t, regRec)

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+pair["accessToken"])
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var listed []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}
