package domain

import "time"

type Address struct {
	ID          string `json:"id,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	AddressLine string `json:"address"`
	City        string `json:"city,omitempty"`
	Area        string `json:"area,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	Country     string `json:"country,omitempty"`
	IsDefault   bool   `json:"is_default,omitempty"`
}

// Label renders the addressee name for display, falling back to a
// generic label when the record carries no name.
func (a Address) Label() string {
	name := a.FirstName
	if a.LastName != "" {
		if name != "" {
			name += " "
		}
		name += a.LastName
	}
	if name == "" {
		return "Saved address"
	}
	return name
}

// Customer is the inventory API's customer record.
type Customer struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
}

// Account is the storefront's own user document, keyed by phone number.
// It links a login to the customer record provisioned in the inventory
// API at registration time.
type Account struct {
	Phone        string    `bson:"_id" json:"phone"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CustomerID   int64     `bson:"customer_id" json:"customer_id"`
	FirstName    string    `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName     string    `bson:"last_name,omitempty" json:"last_name,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
