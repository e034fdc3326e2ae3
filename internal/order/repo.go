// Package order persists orders, courier records and courier reviews.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrCourierNotFound = errors.New("courier not found")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Row, error)
	List(ctx context.Context, limit, offset int) ([]Row, error)
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]Row, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) (bool, error)
}

type CourierRepository interface {
	CreateCourier(ctx context.Context, c *Courier) error
	GetCourier(ctx context.Context, id string) (*Courier, error)
	ListCouriers(ctx context.Context) ([]Courier, error)
	UpdateCourier(ctx context.Context, c *Courier) error
	DeleteCourier(ctx context.Context, id string) (bool, error)
}

type CourierReviewRepository interface {
	CreateCourierReview(ctx context.Context, r *CourierReview) error
	ListCourierReviews(ctx context.Context, courierID string) ([]CourierReviewRow, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, client_id, cart_id, status, delivery_address, courier_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
	`, o.ID, o.ClientID, o.CartID, o.Status, o.DeliveryAddress, o.CourierID)
	return err
}

const orderRowQuery = `
	SELECT o.id, o.client_id, o.cart_id, o.status, o.delivery_address, o.courier_id, o.created_at,
	       cu.first_name, cu.last_name, cu.username, co.role
	FROM orders o
	JOIN users cu ON cu.id = o.client_id
	JOIN users co ON co.id = o.courier_id
`

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Row, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var row Row
	if err := r.db.QueryRow(ctx, orderRowQuery+` WHERE o.id=$1`, id).
		Scan(&row.ID, &row.ClientID, &row.CartID, &row.Status, &row.DeliveryAddress,
			&row.CourierID, &row.CreatedAt,
			&row.Client.FirstName, &row.Client.LastName, &row.Client.Username,
			&row.CourierRole); err != nil {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Row, error) {
	return r.list(ctx, orderRowQuery+` ORDER BY o.created_at DESC LIMIT $1 OFFSET $2`,
		clampLimit(limit), clampOffset(offset))
}

func (r *PGRepo) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]Row, error) {
	return r.list(ctx, orderRowQuery+` WHERE o.client_id=$3 ORDER BY o.created_at DESC LIMIT $1 OFFSET $2`,
		clampLimit(limit), clampOffset(offset), clientID)
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.ClientID, &row.CartID, &row.Status, &row.DeliveryAddress,
			&row.CourierID, &row.CreatedAt,
			&row.Client.FirstName, &row.Client.LastName, &row.Client.Username,
			&row.CourierRole); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// ---- couriers ----

func (r *PGRepo) CreateCourier(ctx context.Context, c *Courier) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO couriers (id, user_id, current_order_id, status)
		VALUES ($1,$2,$3,$4)
	`, c.ID, c.UserID, c.CurrentOrderID, c.Status)
	return err
}

func (r *PGRepo) GetCourier(ctx context.Context, id string) (*Courier, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Courier
	if err := r.db.QueryRow(ctx, `
		SELECT id, user_id, current_order_id, status FROM couriers WHERE id=$1
	`, id).Scan(&c.ID, &c.UserID, &c.CurrentOrderID, &c.Status); err != nil {
		return nil, ErrCourierNotFound
	}
	return &c, nil
}

func (r *PGRepo) ListCouriers(ctx context.Context) ([]Courier, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, user_id, current_order_id, status FROM couriers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Courier
	for rows.Next() {
		var c Courier
		if err := rows.Scan(&c.ID, &c.UserID, &c.CurrentOrderID, &c.Status); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateCourier(ctx context.Context, c *Courier) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE couriers
		SET current_order_id = COALESCE(NULLIF($2,'')::uuid, current_order_id),
		    status           = COALESCE(NULLIF($3,''), status)
		WHERE id = $1
	`, c.ID, c.CurrentOrderID, string(c.Status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCourierNotFound
	}
	return nil
}

func (r *PGRepo) DeleteCourier(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM couriers WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// ---- courier reviews ----

func (r *PGRepo) CreateCourierReview(ctx context.Context, rv *CourierReview) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// No uniqueness on (client, courier): repeat reviews are allowed.
	_, err := r.db.Exec(ctx, `
		INSERT INTO courier_reviews (id, client_id, courier_id, rating, created_at)
		VALUES ($1,$2,$3,$4,NOW())
	`, rv.ID, rv.ClientID, rv.CourierID, rv.Rating)
	return err
}

func (r *PGRepo) ListCourierReviews(ctx context.Context, courierID string) ([]CourierReviewRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT rv.id, rv.client_id, rv.courier_id, rv.rating, rv.created_at,
		       co.first_name, co.last_name, co.username,
		       cl.first_name, cl.last_name, cl.username
		FROM courier_reviews rv
		JOIN users co ON co.id = rv.courier_id
		JOIN users cl ON cl.id = rv.client_id
		WHERE ($1 = '' OR rv.courier_id::text = $1)
		ORDER BY rv.created_at DESC
	`, courierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CourierReviewRow
	for rows.Next() {
		var rr CourierReviewRow
		if err := rows.Scan(&rr.ID, &rr.ClientID, &rr.CourierID, &rr.Rating, &rr.CreatedAt,
			&rr.Courier.FirstName, &rr.Courier.LastName, &rr.Courier.Username,
			&rr.Client.FirstName, &rr.Client.LastName, &rr.Client.Username); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
