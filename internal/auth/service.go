// Package auth implements registration, login and logout, including token
// pair issuance and single-use refresh invalidation.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bekzatm/tezdeliver/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

type Service struct {
	users   user.Repository
	tokens  *Tokens
	revoked Blacklist
}

func NewService(users user.Repository, tokens *Tokens, revoked Blacklist) *Service {
	return &Service{users: users, tokens: tokens, revoked: revoked}
}

type RegisterInput struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	Role        user.Role `json:"user_role"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
}

// Session is the response shape shared by register and login: identity
// subset plus exactly one access and one refresh token.
type Session struct {
	User    SessionUser `json:"user"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

type SessionUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register persists the user and issues a token pair as part of the same
// operation; callers never request tokens separately.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	role := in.Role
	if role == "" {
		role = user.RoleClient
	}
	if !role.Valid() {
		return nil, errors.New("unknown role")
	}
	hash, err := user.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &user.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		PhoneNumber:  in.PhoneNumber,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrAlreadyExist) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return s.session(u)
}

// Login deliberately collapses unknown-user and wrong-password into one
// error so usernames cannot be enumerated.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.session(u)
}

// Logout invalidates a refresh token. A malformed, expired or already
// blacklisted token fails; the first logout with a fresh token wins.
func (s *Service) Logout(ctx context.Context, refresh string) error {
	claims, err := s.tokens.Parse(refresh, KindRefresh)
	if err != nil {
		return ErrBadToken
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return ErrBadToken
	}
	ok, err := s.revoked.Revoke(ctx, claims.ID, ttl)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBadToken
	}
	return nil
}

func (s *Service) session(u *user.User) (*Session, error) {
	pair, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{
		User:    SessionUser{Username: u.Username, Email: u.Email},
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}, nil
}
