package user

import "time"

// Role is the closed set of account roles. A user keeps the role it was
// registered with; there is no role-transition flow.
type Role string

const (
	RoleClient  Role = "client"
	RoleCourier Role = "courier"
	RoleOwner   Role = "owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleCourier, RoleOwner:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"user_role"`
	PhoneNumber  string    `json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Simple is the reduced projection nested inside reviews and orders.
type Simple struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

func (u *User) Simple() Simple {
	return Simple{FirstName: u.FirstName, LastName: u.LastName, Username: u.Username}
}
