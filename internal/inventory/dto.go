package inventory

import (
	"fmt"

	"github.com/linkon63/neocomerze/internal/domain"
)

// The inventory API serves loosely-shaped JSON; every field here is
// optional and mapping applies the documented fallbacks instead of
// trusting the payload.

type localizedDTO struct {
	En string `json:"en"`
}

type mediaDTO struct {
	OriginalURL string `json:"original_url"`
}

type tagDTO struct {
	Name string `json:"name"`
}

type optionValueDTO struct {
	ID         int64         `json:"id"`
	Name       *localizedDTO `json:"name"`
	OptionName *localizedDTO `json:"option_name"`
}

type pricingDTO struct {
	UnitPrice string `json:"unit_price"`
}

type variantDTO struct {
	ID             int64            `json:"id"`
	SKU            string           `json:"sku"`
	CurrentPricing *pricingDTO      `json:"current_pricing"`
	OptionValues   []optionValueDTO `json:"option_values"`
}

type productDTO struct {
	ID          int64         `json:"id"`
	Name        *localizedDTO `json:"name"`
	Description *localizedDTO `json:"description"`
	Media       []mediaDTO    `json:"media"`
	Tags        []tagDTO      `json:"tags"`
	Variants    []variantDTO  `json:"variants"`
}

type categoryDTO struct {
	ID   int64         `json:"id"`
	Name *localizedDTO `json:"name"`
}

type campaignDTO struct {
	ID    int64         `json:"id"`
	Title *localizedDTO `json:"title"`
	Media []mediaDTO    `json:"media"`
}

type generalInfoDTO struct {
	ShopName     string     `json:"shop_name"`
	TopBarSlogan string     `json:"top_bar_slogan"`
	Media        []mediaDTO `json:"media"`
}

type addressDTO struct {
	ID          any    `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	Area        string `json:"area"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
	IsDefault   bool   `json:"is_default"`
}

type customerDTO struct {
	ID             int64        `json:"id"`
	Phone          string       `json:"phone"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Addresses      []addressDTO `json:"addresses"`
	MailingAddress *addressDTO  `json:"mailing_address"`
}

func localized(l *localizedDTO, fallback string) string {
	if l == nil || l.En == "" {
		return fallback
	}
	return l.En
}

func mediaURLs(media []mediaDTO) []string {
	var urls []string
	for _, m := range media {
		if m.OriginalURL != "" {
			urls = append(urls, m.OriginalURL)
		}
	}
	return urls
}

func mapVariant(dto variantDTO) domain.Variant {
	v := domain.Variant{ID: dto.ID, SKU: dto.SKU}
	if dto.CurrentPricing != nil {
		v.PriceText = dto.CurrentPricing.UnitPrice
		if money, ok := domain.ParseMoney(dto.CurrentPricing.UnitPrice); ok {
			v.Price = money
		}
	}
	for i, ov := range dto.OptionValues {
		// Positional fallback keeps values groupable when the catalog
		// omits the facet name.
		facet := localized(ov.OptionName, fmt.Sprintf("option-%d", i))
		v.OptionValues = append(v.OptionValues, domain.OptionValue{
			ID:       ov.ID,
			FacetKey: facet,
			Label:    localized(ov.Name, ""),
		})
	}
	return v
}

func mapProduct(dto productDTO) domain.Product {
	p := domain.Product{
		ID:          dto.ID,
		Name:        localized(dto.Name, "Product"),
		Description: localized(dto.Description, ""),
		Images:      mediaURLs(dto.Media),
	}
	if len(dto.Tags) > 0 {
		p.Badge = dto.Tags[0].Name
	}
	for _, v := range dto.Variants {
		p.Variants = append(p.Variants, mapVariant(v))
	}
	return p
}

func mapAddress(dto addressDTO, index int) domain.Address {
	a := domain.Address{
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Phone:       dto.Phone,
		AddressLine: dto.Address,
		City:        dto.City,
		Area:        dto.Area,
		Postcode:    dto.Postcode,
		Country:     dto.Country,
		IsDefault:   dto.IsDefault,
	}
	if a.AddressLine == "" {
		a.AddressLine = dto.AddressLine
	}
	switch id := dto.ID.(type) {
	case string:
		a.ID = id
	case float64:
		a.ID = fmt.Sprintf("%.0f", id)
	default:
		a.ID = fmt.Sprintf("addr-%d", index)
	}
	return a
}

func mapCustomer(dto customerDTO) domain.Customer {
	c := domain.Customer{
		ID:        dto.ID,
		Phone:     dto.Phone,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
	}
	raw := dto.Addresses
	if len(raw) == 0 && dto.MailingAddress != nil {
		raw = []addressDTO{*dto.MailingAddress}
	}
	for i, a := range raw {
		c.Addresses = append(c.Addresses, mapAddress(a, i))
	}
	return c
}
