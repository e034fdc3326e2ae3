package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bekzatm/tezdeliver/internal/user"
)

// stubUsers implements user.Repository in memory, keyed by username.
type stubUsers struct {
	byUsername map[string]*user.User
}

func newStubUsers() *stubUsers {
	return &stubUsers{byUsername: make(map[string]*user.User)}
}

func (s *stubUsers) Create(_ context.Context, u *user.User) error {
	if _, ok := s.byUsername[u.Username]; ok {
		return user.ErrAlreadyExist
	}
	cp := *u
	s.byUsername[u.Username] = &cp
	return nil
}

func (s *stubUsers) GetByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := s.byUsername[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range s.byUsername {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *stubUsers) List(context.Context, int, int) ([]user.User, error) { return nil, nil }
func (s *stubUsers) Update(context.Context, *user.User, bool) error      { return nil }
func (s *stubUsers) Delete(context.Context, string) (bool, error)        { return false, nil }

// memBlacklist is an in-memory stand-in for the redis SETNX blacklist.
type memBlacklist struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemBlacklist() *memBlacklist { return &memBlacklist{seen: make(map[string]bool)} }

func (b *memBlacklist) Revoke(_ context.Context, jti string, _ time.Duration) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seen[jti] {
		return false, nil
	}
	b.seen[jti] = true
	return true, nil
}

func newTestService() *Service {
	tokens := NewTokens("test-secret", time.Minute, time.Hour)
	return NewService(newStubUsers(), tokens, newMemBlacklist())
}

func TestRegisterIssuesOneTokenPair(t *testing.T) {
	svc := newTestService()

	sess, err := svc.Register(context.Background(), RegisterInput{
		Username: "aijan", Email: "aijan@example.com", Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "aijan", sess.User.Username)
	assert.Equal(t, "aijan@example.com", sess.User.Email)
	assert.NotEmpty(t, sess.Access)
	assert.NotEmpty(t, sess.Refresh)
	assert.NotEqual(t, sess.Access, sess.Refresh)

	// both tokens must parse as their own kind and nothing else
	access, err := svc.tokens.Parse(sess.Access, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, string(user.RoleClient), access.Role)
	_, err = svc.tokens.Parse(sess.Access, KindRefresh)
	assert.ErrorIs(t, err, ErrBadToken)
	_, err = svc.tokens.Parse(sess.Refresh, KindRefresh)
	require.NoError(t, err)
}

func TestRegisterDuplicateUsernameIssuesNoToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Username: "aijan", Password: "secret"})
	require.NoError(t, err)

	sess, err := svc.Register(context.Background(), RegisterInput{Username: "aijan", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Nil(t, sess)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "x", Password: "p", Role: user.Role("admin"),
	})
	assert.Error(t, err)
}

func TestLoginGenericFailure(t *testing.T) {
	svc := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Username: "aijan", Password: "secret"})
	require.NoError(t, err)

	// unknown user and wrong password collapse to the same error
	_, err = svc.Login(context.Background(), "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "aijan", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sess, err := svc.Login(context.Background(), "aijan", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Access)
	assert.NotEmpty(t, sess.Refresh)
}

func TestLogoutIsSingleUse(t *testing.T) {
	svc := newTestService()
	sess, err := svc.Register(context.Background(), RegisterInput{Username: "aijan", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), sess.Refresh))
	assert.ErrorIs(t, svc.Logout(context.Background(), sess.Refresh), ErrBadToken)
}

func TestLogoutRejectsBadTokens(t *testing.T) {
	svc := newTestService()
	sess, err := svc.Register(context.Background(), RegisterInput{Username: "aijan", Password: "secret"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Logout(context.Background(), "not-a-token"), ErrBadToken)
	// an access token is not a refresh token
	assert.ErrorIs(t, svc.Logout(context.Background(), sess.Access), ErrBadToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	ours := NewTokens("secret-a", time.Minute, time.Hour)
	theirs := NewTokens("secret-b", time.Minute, time.Hour)

	pair, err := theirs.Issue(&user.User{ID: "u1", Role: user.RoleClient})
	require.NoError(t, err)
	_, err = ours.Parse(pair.Access, KindAccess)
	assert.ErrorIs(t, err, ErrBadToken)
}
