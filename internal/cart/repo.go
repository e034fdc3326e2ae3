// Package cart persists per-user carts and their items. Every user has at
// most one cart; adding an existing product merges quantities.
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("cart not found")
	ErrItemNotFound = errors.New("cart item not found")
)

type Repository interface {
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)
	GetByID(ctx context.Context, id string) (*Cart, error)
	GetByUser(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) (*Item, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) (bool, error)
	Items(ctx context.Context, cartID string) ([]ItemRow, error)
	// TotalPrice is the cart-wide aggregate consumed by order views.
	TotalPrice(ctx context.Context, cartID string) (decimal.Decimal, error)
	Clear(ctx context.Context, cartID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) GetOrCreate(ctx context.Context, userID string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := r.GetByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	c = &Cart{ID: uuid.NewString(), UserID: userID}
	// ON CONFLICT keeps the one-cart-per-user invariant under concurrent
	// first requests.
	if _, err := r.db.Exec(ctx, `
		INSERT INTO carts (id, user_id) VALUES ($1,$2)
		ON CONFLICT (user_id) DO NOTHING
	`, c.ID, c.UserID); err != nil {
		return nil, err
	}
	return r.GetByUser(ctx, userID)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Cart
	if err := r.db.QueryRow(ctx, `SELECT id, user_id FROM carts WHERE id=$1`, id).
		Scan(&c.ID, &c.UserID); err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Cart
	if err := r.db.QueryRow(ctx, `SELECT id, user_id FROM carts WHERE user_id=$1`, userID).
		Scan(&c.ID, &c.UserID); err != nil {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *PGRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if quantity < 1 {
		return nil, errors.New("quantity must be >= 1")
	}

	var it Item
	err := r.db.QueryRow(ctx, `
		SELECT id, cart_id, product_id, quantity
		FROM cart_items WHERE cart_id=$1 AND product_id=$2
	`, cartID, productID).Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity)
	if err == nil {
		it.Quantity += quantity
		_, err = r.db.Exec(ctx, `UPDATE cart_items SET quantity=$2 WHERE id=$1`, it.ID, it.Quantity)
		return &it, err
	}

	it = Item{ID: uuid.NewString(), CartID: cartID, ProductID: productID, Quantity: quantity}
	_, err = r.db.Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity)
		VALUES ($1,$2,$3,$4)
	`, it.ID, it.CartID, it.ProductID, it.Quantity)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *PGRepo) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if quantity < 1 {
		return errors.New("quantity must be >= 1")
	}
	tag, err := r.db.Exec(ctx, `UPDATE cart_items SET quantity=$2 WHERE id=$1`, itemID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PGRepo) DeleteItem(ctx context.Context, itemID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id=$1`, itemID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Items(ctx context.Context, cartID string) ([]ItemRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.cart_id, i.product_id, i.quantity,
		       p.id, p.store_id, p.name, p.image, p.description, p.price, p.category
		FROM cart_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.cart_id=$1
		ORDER BY p.name
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemRow
	for rows.Next() {
		var ir ItemRow
		if err := rows.Scan(&ir.Item.ID, &ir.CartID, &ir.ProductID, &ir.Quantity,
			&ir.Product.ID, &ir.Product.StoreID, &ir.Product.Name, &ir.Product.Image,
			&ir.Product.Description, &ir.Product.Price, &ir.Product.Category); err != nil {
			return nil, err
		}
		out = append(out, ir)
	}
	return out, rows.Err()
}

func (r *PGRepo) TotalPrice(ctx context.Context, cartID string) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total string
	if err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(i.quantity * p.price), 0)::text
		FROM cart_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.cart_id=$1
	`, cartID).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(total)
}

func (r *PGRepo) Clear(ctx context.Context, cartID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID)
	return err
}
