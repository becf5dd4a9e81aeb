package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkon63/neocomerze/internal/cart"
	"github.com/linkon63/neocomerze/internal/domain"
	"github.com/linkon63/neocomerze/internal/events"
)

type mockPlacer struct {
	m     sync.Mutex
	got   *domain.OrderRequest
	order *domain.Order
	err   error
}

func (m *mockPlacer) CreateOrder(_ context.Context, order domain.OrderRequest) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.got = &order
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

type mockPublisher struct {
	m      sync.Mutex
	events []events.OrderPlaced
	err    error
}

func (m *mockPublisher) PublishOrderPlaced(_ context.Context, e events.OrderPlaced) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, e)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func int64Ptr(v int64) *int64 { return &v }

func filledCart() *cart.Store {
	store := cart.NewStore()
	store.AddItem(domain.CartLine{
		ProductID:    42,
		VariantID:    int64Ptr(7),
		Name:         "Summer Shirt",
		Price:        domain.Money{Cents: 125000, Currency: "BDT"},
		VariantLabel: "Red / M",
	}, 2)
	store.AddItem(domain.CartLine{
		ProductID: 50,
		Name:      "Tote Bag",
		Price:     domain.Money{Cents: 4500, Currency: "BDT"},
	}, 1)
	return store
}

func address() domain.Address {
	return domain.Address{FirstName: "Rahim", AddressLine: "12 Mirpur Rd", City: "Dhaka", Country: "Bangladesh"}
}

func TestTotal(t *testing.T) {
	total := Total(filledCart().Lines())
	assert.Equal(t, domain.Money{Cents: 254500, Currency: "BDT"}, total)

	assert.Equal(t, domain.Money{}, Total(nil))
}

func TestPlaceOrder_Success(t *testing.T) {
	placer := &mockPlacer{order: &domain.Order{ID: 555, Status: "pending"}}
	publisher := &mockPublisher{}
	svc := NewService(placer, publisher)
	store := filledCart()

	receipt, err := svc.PlaceOrder(context.Background(), store, PlaceOrderInput{
		SessionID:       "sess-1",
		CustomerID:      314,
		ShippingAddress: address(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(555), receipt.Order.ID)
	assert.Equal(t, domain.Money{Cents: 254500, Currency: "BDT"}, receipt.Total)

	// Variant lines submit the variant id, bare lines the product id.
	require.NotNil(t, placer.got)
	require.Len(t, placer.got.Purchasable, 2)
	assert.Equal(t, domain.Purchasable{ID: 7, Quantity: 2}, placer.got.Purchasable[0])
	assert.Equal(t, domain.Purchasable{ID: 42, Quantity: 1}, placer.got.Purchasable[1])

	assert.Equal(t, domain.PaymentMethodCOD, placer.got.Payment.Method)
	assert.Equal(t, "2545.00", placer.got.Payment.Amount)
	assert.Equal(t, "BDT", placer.got.Payment.Currency)

	// Billing defaults to shipping when absent.
	assert.Equal(t, placer.got.ShippingAddress, placer.got.BillingAddress)

	// Cart cleared, confirmation toast shown, event published.
	assert.Empty(t, store.Lines())
	assert.Equal(t, "Order placed (COD)", store.Toast())
	require.Len(t, publisher.events, 1)
	assert.Equal(t, int64(555), publisher.events[0].OrderID)
	assert.Equal(t, 2, publisher.events[0].ItemCount)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc := NewService(&mockPlacer{}, nil)
	store := cart.NewStore()

	_, err := svc.PlaceOrder(context.Background(), store, PlaceOrderInput{
		CustomerID:      314,
		ShippingAddress: address(),
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, "Cart is empty", store.Toast())
}

func TestPlaceOrder_NoAddress(t *testing.T) {
	svc := NewService(&mockPlacer{}, nil)
	store := filledCart()

	_, err := svc.PlaceOrder(context.Background(), store, PlaceOrderInput{CustomerID: 314})
	assert.ErrorIs(t, err, ErrNoAddress)
	assert.Equal(t, "Select an address", store.Toast())
	assert.Len(t, store.Lines(), 2)
}

func TestPlaceOrder_APIFailureKeepsCart(t *testing.T) {
	placer := &mockPlacer{err: errors.New("inventory down")}
	svc := NewService(placer, nil)
	store := filledCart()

	_, err := svc.PlaceOrder(context.Background(), store, PlaceOrderInput{
		CustomerID:      314,
		ShippingAddress: address(),
	})
	require.Error(t, err)
	assert.Len(t, store.Lines(), 2)
}

func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	placer := &mockPlacer{order: &domain.Order{ID: 1}}
	svc := NewService(placer, &mockPublisher{err: errors.New("broker down")})
	store := filledCart()

	_, err := svc.PlaceOrder(context.Background(), store, PlaceOrderInput{
		CustomerID:      314,
		ShippingAddress: address(),
	})
	assert.NoError(t, err)
	assert.Empty(t, store.Lines())
}
