package domain

// OptionValue is one facet value of a variant, e.g. "Red" under the
// "Color" facet. FacetKey is derived at the API boundary: the facet's own
// name when the catalog provides one, otherwise a positional
// "option-<index>" fallback so every value can still be grouped.
type OptionValue struct {
	ID       int64  `json:"id"`
	FacetKey string `json:"facet_key"`
	Label    string `json:"label"`
}

// Variant is one purchasable SKU of a product. OptionValues is ordered,
// one entry per facet the product defines; it is empty for single-SKU
// products, in which case SKU serves as the display fallback.
type Variant struct {
	ID           int64         `json:"id"`
	SKU          string        `json:"sku,omitempty"`
	Price        Money         `json:"price"`
	PriceText    string        `json:"price_text,omitempty"`
	OptionValues []OptionValue `json:"option_values,omitempty"`
}

// Label renders the variant's option values joined with " / ", falling
// back to the SKU when no option values are present.
func (v Variant) Label() string {
	if len(v.OptionValues) == 0 {
		return v.SKU
	}
	out := ""
	for _, ov := range v.OptionValues {
		if ov.Label == "" {
			continue
		}
		if out != "" {
			out += " / "
		}
		out += ov.Label
	}
	if out == "" {
		return v.SKU
	}
	return out
}

// OptionGroup is one facet of a product with the de-duplicated values
// observed across its variants, in order of first appearance.
type OptionGroup struct {
	Key    string        `json:"key"`
	Label  string        `json:"label"`
	Values []OptionValue `json:"values"`
}

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Badge       string    `json:"badge,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Campaign struct {
	ID     int64    `json:"id"`
	Title  string   `json:"title"`
	Images []string `json:"images,omitempty"`
}

// GeneralInfo is the shop-level metadata block served by the inventory API.
type GeneralInfo struct {
	ShopName     string   `json:"shop_name"`
	TopBarSlogan string   `json:"top_bar_slogan,omitempty"`
	Logos        []string `json:"logos,omitempty"`
}
