package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bekzatm/tezdeliver/internal/httpx"
	"github.com/bekzatm/tezdeliver/internal/policy"
	"github.com/bekzatm/tezdeliver/internal/store"
	"github.com/bekzatm/tezdeliver/internal/user"
)

// asActor injects an authenticated actor the way the auth middleware would,
// without minting real tokens.
func asActor(a policy.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		httpx.SetActor(c, a)
		c.Next()
	}
}

//
// in-memory stub implementing store.StoreRepository + store.ReviewRepository
//

type stubStoreRepo struct {
	stores     map[string]*store.Store
	categories map[string]string // id -> name
	reviews    map[string][]store.ReviewRow
	lastQuery  store.Query
}

func newStubStoreRepo() *stubStoreRepo {
	return &stubStoreRepo{
		stores:     make(map[string]*store.Store),
		categories: make(map[string]string),
		reviews:    make(map[string][]store.ReviewRow),
	}
}

func (s *stubStoreRepo) CreateStore(_ context.Context, st *store.Store) error {
	cp := *st
	s.stores[st.ID] = &cp
	return nil
}

func (s *stubStoreRepo) GetStore(_ context.Context, id string) (*store.Store, error) {
	st, ok := s.stores[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *stubStoreRepo) ListStores(_ context.Context, q store.Query) ([]store.ListRow, error) {
	s.lastQuery = q
	out := make([]store.ListRow, 0, len(s.stores))
	for _, st := range s.stores {
		if q.CategoryID != "" && st.CategoryID != q.CategoryID {
			continue
		}
		out = append(out, store.ListRow{Store: *st, CategoryName: s.categories[st.CategoryID]})
	}
	return out, nil
}

func (s *stubStoreRepo) GetDetail(_ context.Context, id string) (*store.Detail, error) {
	st, ok := s.stores[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &store.Detail{
		Store:        *st,
		CategoryName: s.categories[st.CategoryID],
		Reviews:      s.reviews[id],
	}, nil
}

func (s *stubStoreRepo) UpdateStore(_ context.Context, st *store.Store) error {
	cur, ok := s.stores[st.ID]
	if !ok {
		return store.ErrNotFound
	}
	if st.Name != "" {
		cur.Name = st.Name
	}
	if st.Image != "" {
		cur.Image = st.Image
	}
	if st.CategoryID != "" {
		cur.CategoryID = st.CategoryID
	}
	if st.Description != "" {
		cur.Description = st.Description
	}
	if st.Address != "" {
		cur.Address = st.Address
	}
	return nil
}

func (s *stubStoreRepo) DeleteStoreCascade(_ context.Context, id string) (bool, error) {
	if _, ok := s.stores[id]; !ok {
		return false, nil
	}
	delete(s.stores, id)
	delete(s.reviews, id)
	return true, nil
}

func (s *stubStoreRepo) Ratings(_ context.Context, storeID string) ([]int, error) {
	var out []int
	for _, r := range s.reviews[storeID] {
		out = append(out, r.Rating)
	}
	return out, nil
}

func (s *stubStoreRepo) CreateReview(_ context.Context, rv *store.Review) error {
	if _, ok := s.stores[rv.StoreID]; !ok {
		return store.ErrNotFound
	}
	s.reviews[rv.StoreID] = append(s.reviews[rv.StoreID], store.ReviewRow{Review: *rv})
	return nil
}

func (s *stubStoreRepo) ListReviews(_ context.Context, storeID string) ([]store.ReviewRow, error) {
	return s.reviews[storeID], nil
}

func newStoreRouter(repo *stubStoreRepo, a policy.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asActor(a))

	r.GET("/store", listStoresHandler(repo))
	r.GET("/store/:id", getStoreHandler(repo))
	r.POST("/store/create", createStoreHandler(repo))
	r.PUT("/store/edit/:id", updateStoreHandler(repo))
	r.DELETE("/store/edit/:id", deleteStoreHandler(repo))
	r.GET("/store_review", listStoreReviewsHandler(repo))
	r.POST("/store_review", createStoreReviewHandler(repo))
	r.PUT("/store_review/:id", mutateStoreReviewHandler())
	r.DELETE("/store_review/:id", mutateStoreReviewHandler())
	return r
}

func seedStore(repo *stubStoreRepo, ownerID string) *store.Store {
	repo.categories["cat1"] = "fast food"
	s := &store.Store{
		ID:         uuid.NewString(),
		Name:       "Dastarkhan",
		Image:      "/uploads/dastarkhan.jpg",
		CategoryID: "cat1",
		Address:    "Abay 10",
		OwnerID:    ownerID,
	}
	_ = repo.CreateStore(context.Background(), s)
	return s
}

var (
	clientActor  = policy.Actor{ID: "client-1", Role: user.RoleClient}
	ownerActor   = policy.Actor{ID: "owner-1", Role: user.RoleOwner}
	courierActor = policy.Actor{ID: "courier-1", Role: user.RoleCourier}
)

func TestListStores_AggregatesAndFilter(t *testing.T) {
	repo := newStubStoreRepo()
	s := seedStore(repo, ownerActor.ID)
	repo.reviews[s.ID] = []store.ReviewRow{
		{Review: store.Review{StoreID: s.ID, Rating: 5}},
		{Review: store.Review{StoreID: s.ID, Rating: 4}},
		{Review: store.Review{StoreID: s.ID, Rating: 2}},
	}
	r := newStoreRouter(repo, clientActor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/store?category=cat1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got []struct {
		StoreName      string          `json:"store_name"`
		AvgRating      float64         `json:"avg_rating"`
		CountPeople    json.RawMessage `json:"count_people"`
		CountGoodGrade string          `json:"count_good_grade"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len=%d, want 1", len(got))
	}
	if got[0].StoreName != "Dastarkhan" || got[0].AvgRating != 3.7 {
		t.Fatalf("unexpected item: %+v", got[0])
	}
	if string(got[0].CountPeople) != "3" {
		t.Fatalf("count_people=%s, want 3", got[0].CountPeople)
	}
	// 2 of 3 ratings are >= 4
	if got[0].CountGoodGrade != "67%" {
		t.Fatalf("count_good_grade=%q", got[0].CountGoodGrade)
	}
	if repo.lastQuery.CategoryID != "cat1" {
		t.Fatalf("category filter not forwarded: %+v", repo.lastQuery)
	}
}

func TestListStores_RequiresActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// no actor middleware, same as a request that skipped auth
	r.GET("/store", listStoresHandler(newStubStoreRepo()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/store", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGetStore_DetailAndNotFound(t *testing.T) {
	repo := newStubStoreRepo()
	s := seedStore(repo, ownerActor.ID)
	r := newStoreRouter(repo, courierActor)

	// any authenticated role may read the detail
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/store/"+s.ID, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var got struct {
			StoreName string `json:"store_name"`
			Category  struct {
				CategoryName string `json:"category_name"`
			} `json:"category"`
			Reviews []json.RawMessage `json:"store_reviews"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if got.StoreName != "Dastarkhan" || got.Category.CategoryName != "fast food" {
			t.Fatalf("unexpected detail: %+v", got)
		}
		if got.Reviews == nil {
			t.Fatalf("store_reviews must be a list, not null")
		}
	}

	// 404
	{
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/store/nope", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	}
}

func TestCreateStore_OwnerOnly(t *testing.T) {
	repo := newStubStoreRepo()
	body := `{"store_name":"Plov Center","category_id":"cat1","address":"Dostyk 5"}`

	// client ⇒ 403
	{
		r := newStoreRouter(repo, clientActor)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/store/create", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for client, got %d", w.Code)
		}
	}

	// owner ⇒ 201 and the store belongs to the actor
	{
		r := newStoreRouter(repo, ownerActor)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/store/create", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		var got store.Store
		_ = json.Unmarshal(w.Body.Bytes(), &got)
		if got.OwnerID != ownerActor.ID {
			t.Fatalf("owner_id=%q, want actor id", got.OwnerID)
		}
	}

	// missing name ⇒ 400
	{
		r := newStoreRouter(repo, ownerActor)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/store/create", bytes.NewBufferString(`{"category_id":"cat1"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	}
}

func TestUpdateStore_OnlyOwningUser(t *testing.T) {
	repo := newStubStoreRepo()
	s := seedStore(repo, ownerActor.ID)
	body := `{"store_name":"Dastarkhan 2"}`

	// a different owner cannot touch someone else's store
	{
		other := policy.Actor{ID: "owner-2", Role: user.RoleOwner}
		r := newStoreRouter(repo, other)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/store/edit/"+s.ID, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for foreign owner, got %d", w.Code)
		}
	}

	// the owning user may
	{
		r := newStoreRouter(repo, ownerActor)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/store/edit/"+s.ID, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		got, _ := repo.GetStore(context.Background(), s.ID)
		if got.Name != "Dastarkhan 2" {
			t.Fatalf("update not applied: %+v", got)
		}
	}
}

func TestDeleteStore_CascadesReviews(t *testing.T) {
	repo := newStubStoreRepo()
	s := seedStore(repo, ownerActor.ID)
	repo.reviews[s.ID] = []store.ReviewRow{{Review: store.Review{StoreID: s.ID, Rating: 5}}}
	r := newStoreRouter(repo, ownerActor)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/store/edit/"+s.ID, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if _, err := repo.GetStore(context.Background(), s.ID); err == nil {
		t.Fatalf("store still present after delete")
	}
	if len(repo.reviews[s.ID]) != 0 {
		t.Fatalf("reviews survived the cascade")
	}

	// deleting again ⇒ 404
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/store/edit/"+s.ID, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStoreReview_CreateAndValidate(t *testing.T) {
	repo := newStubStoreRepo()
	s := seedStore(repo, ownerActor.ID)
	r := newStoreRouter(repo, clientActor)

	// valid ⇒ 201, attributed to the actor
	{
		body := `{"store":"` + s.ID + `","rating":5,"comment":"the best plov"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/store_review", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
		rows, _ := repo.ListReviews(context.Background(), s.ID)
		if len(rows) != 1 || rows[0].ClientID != clientActor.ID {
			t.Fatalf("review not stored for actor: %+v", rows)
		}
	}

	// a second review from the same client is allowed
	{
		body := `{"store":"` + s.ID + `","rating":1,"comment":"changed my mind"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/store_review", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("repeat review rejected: %d %s", w.Code, w.Body.String())
		}
	}

	// out-of-range rating ⇒ 400
	for _, rating := range []string{"0", "6"} {
		body := `{"store":"` + s.ID + `","rating":` + rating + `}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/store_review", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("rating %s: expected 400, got %d", rating, w.Code)
		}
	}
}

func TestStoreReview_WriteOnce(t *testing.T) {
	repo := newStubStoreRepo()
	r := newStoreRouter(repo, clientActor)

	// mutation is denied no matter who asks
	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, "/store_review/some-id", bytes.NewBufferString(`{"rating":1}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", method, w.Code)
		}
	}
}
