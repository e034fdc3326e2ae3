package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bekzatm/tezdeliver/internal/auth"
	"github.com/bekzatm/tezdeliver/internal/user"
)

// in-memory user.Repository for the auth flow
type stubUserRepo struct {
	byUsername map[string]*user.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byUsername: make(map[string]*user.User)}
}

func (s *stubUserRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := s.byUsername[u.Username]; ok {
		return user.ErrAlreadyExist
	}
	cp := *u
	s.byUsername[u.Username] = &cp
	return nil
}

func (s *stubUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := s.byUsername[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range s.byUsername {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *stubUserRepo) List(context.Context, int, int) ([]user.User, error) { return nil, nil }
func (s *stubUserRepo) Update(context.Context, *user.User, bool) error      { return nil }
func (s *stubUserRepo) Delete(context.Context, string) (bool, error)        { return false, nil }

// fakeBlacklist mimics the redis SETNX semantics.
type fakeBlacklist struct{ seen map[string]bool }

func (b *fakeBlacklist) Revoke(_ context.Context, jti string, _ time.Duration) (bool, error) {
	if b.seen[jti] {
		return false, nil
	}
	b.seen[jti] = true
	return true, nil
}

func newAuthRouter() *gin.Engine {
	tokens := auth.NewTokens("test-secret", time.Minute, time.Hour)
	svc := auth.NewService(newStubUserRepo(), tokens, &fakeBlacklist{seen: make(map[string]bool)})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", registerHandler(svc))
	r.POST("/login", loginHandler(svc))
	r.POST("/logout", logoutHandler(svc))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type sessionBody struct {
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func TestRegister_SessionShape(t *testing.T) {
	r := newAuthRouter()

	w := postJSON(r, "/register", `{"username":"aijan","email":"aijan@example.com","password":"secret"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got sessionBody
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.User.Username != "aijan" || got.User.Email != "aijan@example.com" {
		t.Fatalf("unexpected user: %+v", got.User)
	}
	if got.Access == "" || got.Refresh == "" || got.Access == got.Refresh {
		t.Fatalf("bad token pair: access=%q refresh=%q", got.Access, got.Refresh)
	}
}

func TestRegister_DuplicateAndMissingFields(t *testing.T) {
	r := newAuthRouter()

	if w := postJSON(r, "/register", `{"username":"aijan","password":"secret"}`); w.Code != http.StatusCreated {
		t.Fatalf("first register: %d %s", w.Code, w.Body.String())
	}

	// same username again ⇒ 400, no tokens
	{
		w := postJSON(r, "/register", `{"username":"aijan","password":"other"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for duplicate, got %d", w.Code)
		}
		if bytes.Contains(w.Body.Bytes(), []byte(`"access"`)) {
			t.Fatalf("duplicate register leaked tokens: %s", w.Body.String())
		}
	}

	// missing password ⇒ 400
	if w := postJSON(r, "/register", `{"username":"x"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestLogin_GenericRejection(t *testing.T) {
	r := newAuthRouter()
	_ = postJSON(r, "/register", `{"username":"aijan","password":"secret"}`)

	// wrong password and unknown user get the identical body
	w1 := postJSON(r, "/login", `{"username":"aijan","password":"wrong"}`)
	w2 := postJSON(r, "/login", `{"username":"nobody","password":"secret"}`)
	if w1.Code != http.StatusUnauthorized || w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", w1.Code, w2.Code)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Fatalf("rejection bodies differ: %s vs %s", w1.Body.String(), w2.Body.String())
	}

	// correct credentials ⇒ 200 with a fresh pair
	w := postJSON(r, "/login", `{"username":"aijan","password":"secret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got sessionBody
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Access == "" || got.Refresh == "" {
		t.Fatalf("login returned no tokens: %s", w.Body.String())
	}
}

func TestLogout_SingleUse(t *testing.T) {
	r := newAuthRouter()
	w := postJSON(r, "/register", `{"username":"aijan","password":"secret"}`)
	var sess sessionBody
	_ = json.Unmarshal(w.Body.Bytes(), &sess)

	// first logout ⇒ 205
	if w := postJSON(r, "/logout", `{"refresh":"`+sess.Refresh+`"}`); w.Code != http.StatusResetContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	// replay ⇒ 400
	if w := postJSON(r, "/logout", `{"refresh":"`+sess.Refresh+`"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on replay, got %d", w.Code)
	}

	// an access token is not accepted
	if w := postJSON(r, "/logout", `{"refresh":"`+sess.Access+`"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for access token, got %d", w.Code)
	}

	// missing token ⇒ 400
	if w := postJSON(r, "/logout", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty refresh, got %d", w.Code)
	}
}
