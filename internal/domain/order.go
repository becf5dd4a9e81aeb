package domain

// PaymentMethodCOD is the only payment method the storefront models.
const PaymentMethodCOD = "cash_on_delivery"

type Purchasable struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

type Payment struct {
	Method   string `json:"method"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// OrderRequest is the submission payload for the inventory API.
type OrderRequest struct {
	CustomerID      int64         `json:"customer_id"`
	BillingAddress  Address       `json:"billing_address"`
	ShippingAddress Address       `json:"shipping_address"`
	Purchasable     []Purchasable `json:"purchasable"`
	Payment         Payment       `json:"payment"`
}

type Order struct {
	ID     int64  `json:"id"`
	Status string `json:"status,omitempty"`
}
