package cart

import (
	"github.com/shopspring/decimal"

	"github.com/bekzatm/tezdeliver/internal/store"
)

type Cart struct {
	ID     string `json:"id"`
	UserID string `json:"user"`
}

type Item struct {
	ID        string `json:"id"`
	CartID    string `json:"cart_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ItemRow is an item joined with its product, as served to clients.
type ItemRow struct {
	Item
	Product store.Product
}

// LineTotal derives quantity × unit price. It is never stored; price edits
// take effect on the next read.
func (r ItemRow) LineTotal() decimal.Decimal {
	return decimal.NewFromInt(r.Product.Price).Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// ItemDTO includes the derived per-line total. The cart-wide sum is served
// by Repository.TotalPrice, not re-added here.
type ItemDTO struct {
	Product    store.ProductDTO `json:"product"`
	Quantity   int              `json:"quantity"`
	TotalPrice int64            `json:"total_price"`
}

type CartDTO struct {
	User  string    `json:"user"`
	Items []ItemDTO `json:"items"`
}

func NewItemDTO(r ItemRow) ItemDTO {
	return ItemDTO{
		Product: store.ProductDTO{
			ProductName:  r.Product.Name,
			ProductImage: r.Product.Image,
			Price:        r.Product.Price,
			Description:  r.Product.Description,
		},
		Quantity:   r.Quantity,
		TotalPrice: r.LineTotal().IntPart(),
	}
}

func NewCartDTO(c *Cart, rows []ItemRow) CartDTO {
	dto := CartDTO{User: c.UserID, Items: make([]ItemDTO, 0, len(rows))}
	for _, r := range rows {
		dto.Items = append(dto.Items, NewItemDTO(r))
	}
	return dto
}
