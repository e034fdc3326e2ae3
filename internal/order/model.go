package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInDelivery Status = "in-delivery"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type CourierStatus string

const (
	CourierBusy      CourierStatus = "busy"
	CourierAvailable CourierStatus = "available"
)

func (s CourierStatus) Valid() bool {
	return s == CourierBusy || s == CourierAvailable
}

type Order struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"client_id"`
	CartID          string    `json:"cart_id"`
	Status          Status    `json:"status"`
	DeliveryAddress string    `json:"delivery_address"`
	CourierID       string    `json:"courier_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type Courier struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user"`
	CurrentOrderID string        `json:"current_orders"`
	Status         CourierStatus `json:"status"`
}

type CourierReview struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	CourierID string    `json:"courier_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_date"`
}
