package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/openfleet/drivers-api/internal/model"
)

// ProductLister defines the product read interface the handler needs.
// Implemented by repository.ProductRepository and repository.MemoryProducts.
type ProductLister interface {
	List(ctx context.Context) ([]model.Product, error)
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	products ProductLister
}

// NewProductHandler creates a new product handler
func NewProductHandler(products ProductLister) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /v1/products. The route is guarded by the auth
// middleware; an unauthenticated request never reaches this handler.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		slog.Error("product listing failed", "error", err)
		WriteError(w, model.NewInternalError())
		return
	}

	WriteJSON(w, http.StatusOK, products)
}
