package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/linkon63/neocomerze/internal/domain"
	"github.com/linkon63/neocomerze/internal/variant"
)

// CatalogService is the read path the product handlers depend on.
type CatalogService interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Campaigns(ctx context.Context) ([]domain.Campaign, error)
	GeneralInfo(ctx context.Context) (*domain.GeneralInfo, error)
}

type ProductHandler struct {
	catalog CatalogService
	timeout time.Duration
}

func NewProductHandler(catalog CatalogService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

// ProductCardDTO is the listing shape: first-variant price, first media
// image, first tag as badge.
type ProductCardDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	Image        string `json:"image,omitempty"`
	Badge        string `json:"badge,omitempty"`
	VariantID    *int64 `json:"variant_id,omitempty"`
	VariantLabel string `json:"variant_label,omitempty"`
}

type ProductsResponse struct {
	Products []ProductCardDTO `json:"products"`
}

type ProductDetailResponse struct {
	Product      domain.Product       `json:"product"`
	OptionGroups []domain.OptionGroup `json:"option_groups"`
	Selection    variant.Selection    `json:"selection"`
	Variant      *domain.Variant      `json:"variant,omitempty"`
}

type SelectOptionRequestDTO struct {
	Selection     variant.Selection `json:"selection"`
	FacetKey      string            `json:"facet_key"`
	OptionValueID int64             `json:"option_value_id"`
}

type SelectOptionResponseDTO struct {
	Selection variant.Selection `json:"selection"`
	Variant   *domain.Variant   `json:"variant,omitempty"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Products(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load products")
		return
	}

	cards := make([]ProductCardDTO, len(products))
	for i, p := range products {
		cards[i] = productCard(p)
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: cards})
}

func productCard(p domain.Product) ProductCardDTO {
	card := ProductCardDTO{
		ID:    p.ID,
		Name:  p.Name,
		Badge: p.Badge,
	}
	if len(p.Images) > 0 {
		card.Image = p.Images[0]
	}
	if len(p.Variants) > 0 {
		first := p.Variants[0]
		card.Price = displayPrice(first)
		card.VariantID = &first.ID
		card.VariantLabel = first.Label()
	}
	return card
}

// displayPrice prefers the structured amount and keeps the catalog's
// raw text for prices that did not parse.
func displayPrice(v domain.Variant) string {
	if !v.Price.IsZero() {
		return v.Price.String()
	}
	return v.PriceText
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "product id must be an integer")
		return
	}

	product, err := h.catalog.Product(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load product")
		return
	}

	selection := variant.SeedSelection(product.Variants)
	resp := ProductDetailResponse{
		Product:      *product,
		OptionGroups: variant.GroupOptions(product.Variants),
		Selection:    selection,
	}
	if active, ok := variant.FindVariant(product.Variants, selection); ok {
		resp.Variant = &active
	}
	respondJSON(w, http.StatusOK, resp)
}

// SelectOption applies one facet tap and returns the new selection and
// active variant. A null variant means the combination has no SKU and
// purchase actions must be disabled.
func (h *ProductHandler) SelectOption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "product id must be an integer")
		return
	}

	var req SelectOptionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.FacetKey == "" {
		respondError(w, http.StatusBadRequest, "missing_facet", "facet_key is required")
		return
	}

	product, err := h.catalog.Product(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load product")
		return
	}

	if req.Selection == nil {
		req.Selection = variant.Selection{}
	}
	selection, active := variant.SelectOption(product.Variants, req.Selection, req.FacetKey, req.OptionValueID)
	respondJSON(w, http.StatusOK, SelectOptionResponseDTO{Selection: selection, Variant: active})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load categories")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *ProductHandler) Campaigns(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	campaigns, err := h.catalog.Campaigns(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load campaigns")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"campaigns": campaigns})
}

func (h *ProductHandler) GeneralInfo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	info, err := h.catalog.GeneralInfo(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load shop info")
		return
	}
	respondJSON(w, http.StatusOK, info)
}
