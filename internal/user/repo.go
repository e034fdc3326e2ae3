package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyExist = errors.New("user already exists")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, error)
	Update(ctx context.Context, u *User, updatePassword bool) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const userCols = `id, username, email, password_hash, first_name, last_name, role, phone_number, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, u *User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, role, phone_number, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.PhoneNumber)
	if err != nil {
		// username carries the only UNIQUE constraint
		return ErrAlreadyExist
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.scanOne(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.scanOne(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username=$1`, username))
}

type row interface{ Scan(dest ...any) error }

func (r *PGRepo) scanOne(rw row) (*User, error) {
	var u User
	if err := rw.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName,
		&u.LastName, &u.Role, &u.PhoneNumber, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+userCols+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName,
			&u.LastName, &u.Role, &u.PhoneNumber, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update never touches role: the role assigned at registration is final.
func (r *PGRepo) Update(ctx context.Context, u *User, updatePassword bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updatePassword {
		_, err := r.db.Exec(ctx, `
			UPDATE users
			SET username     = COALESCE(NULLIF($2, ''), username),
			    email        = COALESCE(NULLIF($3, ''), email),
			    first_name   = COALESCE(NULLIF($4, ''), first_name),
			    last_name    = COALESCE(NULLIF($5, ''), last_name),
			    phone_number = COALESCE(NULLIF($6, ''), phone_number),
			    password_hash = $7,
			    updated_at = NOW()
			WHERE id = $1
		`, u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PhoneNumber, u.PasswordHash)
		return err
	}

	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET username     = COALESCE(NULLIF($2, ''), username),
		    email        = COALESCE(NULLIF($3, ''), email),
		    first_name   = COALESCE(NULLIF($4, ''), first_name),
		    last_name    = COALESCE(NULLIF($5, ''), last_name),
		    phone_number = COALESCE(NULLIF($6, ''), phone_number),
		    updated_at = NOW()
		WHERE id = $1
	`, u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PhoneNumber)
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
