package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/linkon63/neocomerze/internal/account"
	"github.com/linkon63/neocomerze/internal/cart"
	"github.com/linkon63/neocomerze/internal/checkout"
	"github.com/linkon63/neocomerze/internal/domain"
)

// OrderService places the session cart as an order.
type OrderService interface {
	PlaceOrder(ctx context.Context, store *cart.Store, in checkout.PlaceOrderInput) (*checkout.Receipt, error)
}

// AccountResolver maps a login phone to its account document.
type AccountResolver interface {
	Profile(ctx context.Context, phone string) (*domain.Account, *domain.Customer, error)
}

type CheckoutHandler struct {
	sessions *cart.Sessions
	orders   OrderService
	accounts AccountResolver
	timeout  time.Duration
}

func NewCheckoutHandler(sessions *cart.Sessions, orders OrderService, accounts AccountResolver, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		orders:   orders,
		accounts: accounts,
		timeout:  timeout,
	}
}

type PlaceOrderRequestDTO struct {
	Phone           string          `json:"phone"`
	BillingAddress  *domain.Address `json:"billing_address"`
	ShippingAddress *domain.Address `json:"shipping_address"`
}

// PlaceOrder submits the cart as a cash-on-delivery order for the
// account's customer record.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Phone == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "phone is required")
		return
	}

	acct, _, err := h.accounts.Profile(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			respondError(w, http.StatusUnauthorized, "unauthorized", "unknown account")
			return
		}
		respondError(w, http.StatusBadGateway, "account_unavailable", "could not resolve account")
		return
	}

	in := checkout.PlaceOrderInput{
		SessionID:  getSessionID(r.Context()),
		CustomerID: acct.CustomerID,
	}
	if req.ShippingAddress != nil {
		in.ShippingAddress = *req.ShippingAddress
	}
	if req.BillingAddress != nil {
		in.BillingAddress = *req.BillingAddress
	}

	store := h.sessions.Get(getSessionID(r.Context()))
	receipt, err := h.orders.PlaceOrder(ctx, store, in)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		case errors.Is(err, checkout.ErrNoAddress):
			respondError(w, http.StatusBadRequest, "no_address", "select an address")
		default:
			respondError(w, http.StatusBadGateway, "order_failed", "could not place order")
		}
		return
	}

	respondJSON(w, http.StatusCreated, receipt)
}
