package domain

// CartLine is one purchasable entry in a cart. A nil VariantID means the
// bare product with no variant distinction. At most one line exists per
// (ProductID, VariantID) pair; repeated adds merge into Quantity.
type CartLine struct {
	ProductID    int64  `json:"product_id"`
	VariantID    *int64 `json:"variant_id,omitempty"`
	Name         string `json:"name"`
	Price        Money  `json:"price"`
	PriceText    string `json:"price_text,omitempty"`
	Image        string `json:"image,omitempty"`
	VariantLabel string `json:"variant_label,omitempty"`
	Quantity     int    `json:"quantity"`
}

// SameIdentity reports whether two lines share the (product, variant)
// identity pair. Nil variant ids only match each other.
func (l CartLine) SameIdentity(productID int64, variantID *int64) bool {
	if l.ProductID != productID {
		return false
	}
	if l.VariantID == nil || variantID == nil {
		return l.VariantID == nil && variantID == nil
	}
	return *l.VariantID == *variantID
}

// PurchasableID is the identifier submitted to the inventory API: the
// variant id when the line has one, otherwise the product id.
func (l CartLine) PurchasableID() int64 {
	if l.VariantID != nil {
		return *l.VariantID
	}
	return l.ProductID
}
