// Package store persists stores, their catalog (products, combos, contact
// numbers) and store reviews, and computes the rating aggregates shown on
// listings.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound         = errors.New("store not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

type StoreRepository interface {
	CreateStore(ctx context.Context, s *Store) error
	GetStore(ctx context.Context, id string) (*Store, error)
	ListStores(ctx context.Context, q Query) ([]ListRow, error)
	GetDetail(ctx context.Context, id string) (*Detail, error)
	UpdateStore(ctx context.Context, s *Store) error
	// DeleteStoreCascade removes the store and every dependent row
	// (products, combos, contacts, reviews) in one transaction.
	DeleteStoreCascade(ctx context.Context, id string) (bool, error)
	Ratings(ctx context.Context, storeID string) ([]int, error)
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, storeID string) ([]Product, error)
	UpdateProduct(ctx context.Context, p *Product, updatePrice bool) error
	DeleteProduct(ctx context.Context, id string) (bool, error)

	CreateCombo(ctx context.Context, c *ProductCombo) error
	ListCombos(ctx context.Context, storeID string) ([]ProductCombo, error)
	DeleteCombo(ctx context.Context, id string) (bool, error)

	CreateContact(ctx context.Context, c *ContactInfo) error
	ListContacts(ctx context.Context, storeID string) ([]ContactInfo, error)
	DeleteContact(ctx context.Context, id string) (bool, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, r *Review) error
	ListReviews(ctx context.Context, storeID string) ([]ReviewRow, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// ---- categories ----

func (r *PGRepo) CreateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `INSERT INTO categories (id, name) VALUES ($1,$2)`, c.ID, c.Name)
	return err
}

func (r *PGRepo) GetCategory(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Category
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM categories WHERE id=$1`, id).
		Scan(&c.ID, &c.Name); err != nil {
		return nil, ErrCategoryNotFound
	}
	return &c, nil
}

func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateCategory(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE categories SET name = COALESCE(NULLIF($2,''), name) WHERE id=$1
	`, c.ID, c.Name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *PGRepo) DeleteCategory(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// ---- stores ----

func (r *PGRepo) CreateStore(ctx context.Context, s *Store) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO stores (id, name, image, category_id, description, address, owner_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, s.ID, s.Name, s.Image, s.CategoryID, s.Description, s.Address, s.OwnerID)
	return err
}

func (r *PGRepo) GetStore(ctx context.Context, id string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s Store
	if err := r.db.QueryRow(ctx, `
		SELECT id, name, image, category_id, description, address, owner_id
		FROM stores WHERE id=$1
	`, id).Scan(&s.ID, &s.Name, &s.Image, &s.CategoryID, &s.Description, &s.Address, &s.OwnerID); err != nil {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *PGRepo) ListStores(ctx context.Context, q Query) ([]ListRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	search := strings.TrimSpace(q.Search)

	// Ordering is whitelisted, never interpolated from user input as-is.
	orderBy := `s.name ASC`
	if q.OrderBy == "price" {
		orderBy = `(SELECT COALESCE(MIN(p.price), 0) FROM products p WHERE p.store_id = s.id) ASC`
	}

	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.name, s.image, s.category_id, s.description, s.address, s.owner_id, c.name
		FROM stores s
		JOIN categories c ON c.id = s.category_id
		WHERE ($1 = '' OR s.category_id::text = $1)
		  AND ($2 = '' OR s.name ILIKE '%'||$2||'%')
		ORDER BY `+orderBy+`
		LIMIT $3 OFFSET $4
	`, q.CategoryID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var lr ListRow
		if err := rows.Scan(&lr.ID, &lr.Name, &lr.Image, &lr.CategoryID, &lr.Description,
			&lr.Address, &lr.OwnerID, &lr.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetDetail(ctx context.Context, id string) (*Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var d Detail
	if err := r.db.QueryRow(ctx, `
		SELECT s.id, s.name, s.image, s.category_id, s.description, s.address, s.owner_id,
		       c.name, u.first_name, u.last_name, u.username
		FROM stores s
		JOIN categories c ON c.id = s.category_id
		JOIN users u ON u.id = s.owner_id
		WHERE s.id=$1
	`, id).Scan(&d.Store.ID, &d.Store.Name, &d.Store.Image, &d.Store.CategoryID,
		&d.Store.Description, &d.Store.Address, &d.Store.OwnerID,
		&d.CategoryName, &d.Owner.FirstName, &d.Owner.LastName, &d.Owner.Username); err != nil {
		return nil, ErrNotFound
	}

	var err error
	if d.Products, err = r.ListProducts(ctx, id); err != nil {
		return nil, err
	}
	if d.Combos, err = r.ListCombos(ctx, id); err != nil {
		return nil, err
	}
	if d.Contacts, err = r.ListContacts(ctx, id); err != nil {
		return nil, err
	}
	if d.Reviews, err = r.ListReviews(ctx, id); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PGRepo) UpdateStore(ctx context.Context, s *Store) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE stores
		SET name        = COALESCE(NULLIF($2,''), name),
		    image       = COALESCE(NULLIF($3,''), image),
		    category_id = COALESCE(NULLIF($4,'')::uuid, category_id),
		    description = COALESCE(NULLIF($5,''), description),
		    address     = COALESCE(NULLIF($6,''), address)
		WHERE id = $1
	`, s.ID, s.Name, s.Image, s.CategoryID, s.Description, s.Address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteStoreCascade(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Dependents are removed explicitly even though the schema also carries
	// ON DELETE CASCADE, so the cascade is visible and testable here.
	for _, q := range []string{
		`DELETE FROM cart_items WHERE product_id IN (SELECT id FROM products WHERE store_id=$1)`,
		`DELETE FROM store_reviews WHERE store_id=$1`,
		`DELETE FROM contact_infos WHERE store_id=$1`,
		`DELETE FROM product_combos WHERE store_id=$1`,
		`DELETE FROM products WHERE store_id=$1`,
	} {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return false, err
		}
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM stores WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Ratings(ctx context.Context, storeID string) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT rating FROM store_reviews WHERE store_id=$1`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ---- products / combos / contacts ----

func (r *PGRepo) CreateProduct(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, store_id, name, image, description, price, category)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, p.ID, p.StoreID, p.Name, p.Image, p.Description, p.Price, p.Category)
	return err
}

func (r *PGRepo) GetProduct(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	if err := r.db.QueryRow(ctx, `
		SELECT id, store_id, name, image, description, price, category
		FROM products WHERE id=$1
	`, id).Scan(&p.ID, &p.StoreID, &p.Name, &p.Image, &p.Description, &p.Price, &p.Category); err != nil {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *PGRepo) ListProducts(ctx context.Context, storeID string) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, name, image, description, price, category
		FROM products WHERE store_id=$1 ORDER BY name
	`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Image, &p.Description, &p.Price, &p.Category); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateProduct(ctx context.Context, p *Product, updatePrice bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updatePrice {
		_, err := r.db.Exec(ctx, `
			UPDATE products
			SET name        = COALESCE(NULLIF($2,''), name),
			    image       = COALESCE(NULLIF($3,''), image),
			    description = COALESCE(NULLIF($4,''), description),
			    price       = $5,
			    category    = COALESCE(NULLIF($6,''), category)
			WHERE id = $1
		`, p.ID, p.Name, p.Image, p.Description, p.Price, p.Category)
		return err
	}

	_, err := r.db.Exec(ctx, `
		UPDATE products
		SET name        = COALESCE(NULLIF($2,''), name),
		    image       = COALESCE(NULLIF($3,''), image),
		    description = COALESCE(NULLIF($4,''), description),
		    category    = COALESCE(NULLIF($5,''), category)
		WHERE id = $1
	`, p.ID, p.Name, p.Image, p.Description, p.Category)
	return err
}

func (r *PGRepo) DeleteProduct(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) CreateCombo(ctx context.Context, c *ProductCombo) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO product_combos (id, store_id, name, image, description, price)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, c.ID, c.StoreID, c.Name, c.Image, c.Description, c.Price)
	return err
}

func (r *PGRepo) ListCombos(ctx context.Context, storeID string) ([]ProductCombo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, name, image, description, price
		FROM product_combos WHERE store_id=$1 ORDER BY name
	`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductCombo
	for rows.Next() {
		var c ProductCombo
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Image, &c.Description, &c.Price); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) DeleteCombo(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM product_combos WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) CreateContact(ctx context.Context, c *ContactInfo) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO contact_infos (id, store_id, phone) VALUES ($1,$2,$3)
	`, c.ID, c.StoreID, c.Phone)
	return err
}

func (r *PGRepo) ListContacts(ctx context.Context, storeID string) ([]ContactInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, store_id, phone FROM contact_infos WHERE store_id=$1
	`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContactInfo
	for rows.Next() {
		var c ContactInfo
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) DeleteContact(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM contact_infos WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// ---- reviews ----

func (r *PGRepo) CreateReview(ctx context.Context, rv *Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// No uniqueness on (client, store): repeat reviews are allowed.
	_, err := r.db.Exec(ctx, `
		INSERT INTO store_reviews (id, client_id, store_id, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
	`, rv.ID, rv.ClientID, rv.StoreID, rv.Rating, rv.Comment)
	return err
}

func (r *PGRepo) ListReviews(ctx context.Context, storeID string) ([]ReviewRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rv.id, rv.client_id, rv.store_id, rv.rating, rv.comment, rv.created_at,
		       u.first_name, u.last_name, u.username
		FROM store_reviews rv
		JOIN users u ON u.id = rv.client_id
		WHERE rv.store_id=$1
		ORDER BY rv.created_at DESC
	`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReviewRow
	for rows.Next() {
		var rr ReviewRow
		if err := rows.Scan(&rr.ID, &rr.ClientID, &rr.StoreID, &rr.Rating, &rr.Comment, &rr.CreatedAt,
			&rr.Client.FirstName, &rr.Client.LastName, &rr.Client.Username); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
