package store

import "time"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"category_name"`
}

type Store struct {
	ID          string `json:"id"`
	Name        string `json:"store_name"`
	Image       string `json:"store_image"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description"`
	Address     string `json:"address"`
	OwnerID     string `json:"owner_id"`
}

type ContactInfo struct {
	ID      string `json:"id"`
	StoreID string `json:"store_id"`
	Phone   string `json:"contact_info"`
}

type Product struct {
	ID          string `json:"id"`
	StoreID     string `json:"store_id"`
	Name        string `json:"product_name"`
	Image       string `json:"product_image"`
	Description string `json:"description"`
	// Price is a non-negative whole amount in the smallest currency unit.
	Price    int64  `json:"price"`
	Category string `json:"category,omitempty"`
}

type ProductCombo struct {
	ID          string `json:"id"`
	StoreID     string `json:"store_id"`
	Name        string `json:"combo_name"`
	Image       string `json:"combo_image"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

type Review struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	StoreID   string    `json:"store"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_date"`
}

// Query narrows and orders a store listing.
type Query struct {
	CategoryID string
	Search     string // substring match on store name
	OrderBy    string // "name" (default) or "price"
	Limit      int
	Offset     int
}
