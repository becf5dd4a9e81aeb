package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/linkon63/neocomerze/internal/cart"
	"github.com/linkon63/neocomerze/internal/checkout"
	"github.com/linkon63/neocomerze/internal/domain"
)

type CartHandler struct {
	sessions *cart.Sessions
	catalog  CatalogService
	timeout  time.Duration
}

func NewCartHandler(sessions *cart.Sessions, catalog CatalogService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  catalog,
		timeout:  timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64   `json:"product_id"`
	VariantID *int64  `json:"variant_id"`
	Quantity  float64 `json:"quantity"`
}

type CartResponse struct {
	Items []domain.CartLine `json:"items"`
	Total domain.Money      `json:"total"`
	Toast string            `json:"toast,omitempty"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store := h.sessions.Get(getSessionID(r.Context()))
	lines := store.Lines()
	respondJSON(w, http.StatusOK, CartResponse{
		Items: lines,
		Total: checkout.Total(lines),
		Toast: store.Toast(),
	})
}

// AddItem snapshots the product's display fields from the catalog and
// merges the line into the session cart. Quantity arrives as a JSON
// number; fractional and non-positive values are coerced, not rejected.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load product")
		return
	}

	line, ok := buildLine(product, req.VariantID)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid_variant", "variant does not belong to product")
		return
	}

	store := h.sessions.Get(getSessionID(r.Context()))
	store.AddItem(line, int(math.Floor(req.Quantity)))

	lines := store.Lines()
	respondJSON(w, http.StatusCreated, CartResponse{
		Items: lines,
		Total: checkout.Total(lines),
		Toast: store.Toast(),
	})
}

// buildLine snapshots display fields for the cart. A nil variant id on
// a product that has variants defaults to the first one; a product with
// no variants at all is carried as the bare product identity.
func buildLine(product *domain.Product, variantID *int64) (domain.CartLine, bool) {
	line := domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
	}
	if len(product.Images) > 0 {
		line.Image = product.Images[0]
	}

	if len(product.Variants) == 0 {
		return line, true
	}

	chosen := product.Variants[0]
	if variantID != nil {
		found := false
		for _, v := range product.Variants {
			if v.ID == *variantID {
				chosen = v
				found = true
				break
			}
		}
		if !found {
			return domain.CartLine{}, false
		}
	}

	id := chosen.ID
	line.VariantID = &id
	line.Price = chosen.Price
	line.PriceText = chosen.PriceText
	line.VariantLabel = chosen.Label()
	return line, true
}

// RemoveItem deletes one line by its identity pair; a missing line is a
// no-op, mirroring the store semantics.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be an integer")
		return
	}

	var variantID *int64
	if raw := r.URL.Query().Get("variant_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_variant_id", "variant_id must be an integer")
			return
		}
		variantID = &id
	}

	store := h.sessions.Get(getSessionID(r.Context()))
	store.Remove(productID, variantID)

	lines := store.Lines()
	respondJSON(w, http.StatusOK, CartResponse{
		Items: lines,
		Total: checkout.Total(lines),
		Toast: store.Toast(),
	})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store := h.sessions.Get(getSessionID(r.Context()))
	store.Clear()
	respondJSON(w, http.StatusOK, CartResponse{Items: []domain.CartLine{}})
}
