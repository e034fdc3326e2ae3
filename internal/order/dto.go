package order

import (
	"github.com/bekzatm/tezdeliver/internal/user"
)

// CreateOrderRequest payload for placing an order from a cart.
type CreateOrderRequest struct {
	CartID          string `json:"cart_id"`
	DeliveryAddress string `json:"delivery_address"`
	CourierID       string `json:"courier_id"`
}

// OrderDTO mirrors the client-facing order projection: the ordering client
// collapsed to a simple user, courier reference and the delivery address.
type OrderDTO struct {
	OrderClient     user.Simple `json:"order_client"`
	Courier         string      `json:"courier"`
	DeliveryAddress string      `json:"delivery_address"`
	Status          Status      `json:"status"`
	Total           string      `json:"total"`
}

// Row is an order joined with the ordering client's simple projection and
// the courier's role, which the courier gate inspects.
type Row struct {
	Order
	Client      user.Simple
	CourierRole user.Role
}

// courierReviewTimeLayout matches the original API's dd-mm-yyyy hh:mm
// rendering.
const courierReviewTimeLayout = "02-01-2006 15:04"

type CourierReviewDTO struct {
	Courier     user.Simple `json:"courier"`
	Client      user.Simple `json:"client"`
	Rating      int         `json:"rating"`
	CreatedDate string      `json:"created_date"`
}

// CourierReviewRow joins a review with both user projections.
type CourierReviewRow struct {
	CourierReview
	Courier user.Simple
	Client  user.Simple
}

func NewCourierReviewDTO(r CourierReviewRow) CourierReviewDTO {
	return CourierReviewDTO{
		Courier:     r.Courier,
		Client:      r.Client,
		Rating:      r.Rating,
		CreatedDate: r.CreatedAt.Format(courierReviewTimeLayout),
	}
}
