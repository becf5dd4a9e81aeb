// Package checkout turns a session cart into a cash-on-delivery order
// against the inventory API.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/linkon63/neocomerze/internal/cart"
	"github.com/linkon63/neocomerze/internal/domain"
	"github.com/linkon63/neocomerze/internal/events"
)

var (
	ErrEmptyCart  = errors.New("cart is empty")
	ErrNoAddress  = errors.New("no address selected")
	ErrNoCustomer = errors.New("no customer for order")
)

// OrderPlacer is the slice of the inventory client checkout submits to.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, order domain.OrderRequest) (*domain.Order, error)
}

type Service struct {
	placer    OrderPlacer
	publisher events.Publisher
}

func NewService(placer OrderPlacer, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{placer: placer, publisher: publisher}
}

type PlaceOrderInput struct {
	SessionID       string
	CustomerID      int64
	BillingAddress  domain.Address
	ShippingAddress domain.Address
}

type Receipt struct {
	Order domain.Order `json:"order"`
	Total domain.Money `json:"total"`
}

// Total sums the cart's line prices at their stored quantities.
// Totals are computed on structured amounts; display strings never
// enter the arithmetic.
func Total(lines []domain.CartLine) domain.Money {
	var total domain.Money
	for _, line := range lines {
		total = total.Add(line.Price.Mul(line.Quantity))
	}
	return total
}

// PlaceOrder submits the session's cart as a cash-on-delivery order.
// On success the cart is cleared and a confirmation toast is shown; on
// failure the cart is left untouched so the shopper can retry.
func (s *Service) PlaceOrder(ctx context.Context, store *cart.Store, in PlaceOrderInput) (*Receipt, error) {
	lines := store.Lines()
	if len(lines) == 0 {
		store.ShowToast("Cart is empty")
		return nil, ErrEmptyCart
	}
	if in.ShippingAddress.AddressLine == "" {
		store.ShowToast("Select an address")
		return nil, ErrNoAddress
	}
	if in.CustomerID == 0 {
		return nil, ErrNoCustomer
	}
	if in.BillingAddress.AddressLine == "" {
		in.BillingAddress = in.ShippingAddress
	}

	total := Total(lines)
	order := domain.OrderRequest{
		CustomerID:      in.CustomerID,
		BillingAddress:  in.BillingAddress,
		ShippingAddress: in.ShippingAddress,
		Purchasable:     make([]domain.Purchasable, len(lines)),
		Payment: domain.Payment{
			Method:   domain.PaymentMethodCOD,
			Amount:   fmt.Sprintf("%d.%02d", total.Cents/100, total.Cents%100),
			Currency: total.Currency,
		},
	}
	for i, line := range lines {
		order.Purchasable[i] = domain.Purchasable{
			ID:       line.PurchasableID(),
			Quantity: line.Quantity,
		}
	}

	placed, err := s.placer.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	store.Clear()
	store.ShowToast("Order placed (COD)")

	if errPub := s.publisher.PublishOrderPlaced(ctx, events.OrderPlaced{
		OrderID:    placed.ID,
		CustomerID: in.CustomerID,
		SessionID:  in.SessionID,
		ItemCount:  len(lines),
		Total:      total.String(),
		PlacedAt:   time.Now(),
	}); errPub != nil {
		log.Printf("order event publish error: %v", errPub)
	}

	return &Receipt{Order: *placed, Total: total}, nil
}
