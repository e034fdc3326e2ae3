package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bekzatm/tezdeliver/internal/policy"
	"github.com/bekzatm/tezdeliver/internal/store"
)

// GET /store?category=&search=&ordering=
func listStoresHandler(repo store.StoreRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if !policy.CanWriteIfOwner(actor, c.Request.Method) {
			deny(c)
			return
		}
		rows, err := repo.ListStores(c.Request.Context(), store.Query{
			CategoryID: c.Query("category"),
			Search:     c.Query("search"),
			OrderBy:    c.Query("ordering"),
			Limit:      intQuery(c, "limit"),
			Offset:     intQuery(c, "offset"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list stores"})
			return
		}
		items := make([]store.ListItem, 0, len(rows))
		for _, row := range rows {
			ratings, err := repo.Ratings(c.Request.Context(), row.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load ratings"})
				return
			}
			items = append(items, store.NewListItem(row, ratings))
		}
		c.JSON(http.StatusOK, items)
	}
}

// GET /store/:id
func getStoreHandler(repo store.StoreRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		if !policy.CanViewOrderAsCourier(c.Request.Method, "") {
			deny(c)
			return
		}
		d, err := repo.GetDetail(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		c.JSON(http.StatusOK, store.NewDetailView(d))
	}
}

type storeRequest struct {
	StoreName   string `json:"store_name"`
	StoreImage  string `json:"store_image"`
	CategoryID  string `json:"category_id"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// POST /store/create
func createStoreHandler(repo store.StoreRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if !policy.CanCreateStore(actor) {
			deny(c)
			return
		}
		var in storeRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if in.StoreName == "" || in.CategoryID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "store_name and category_id are required"})
			return
		}
		s := &store.Store{
			ID:          uuid.NewString(),
			Name:        in.StoreName,
			Image:       in.StoreImage,
			CategoryID:  in.CategoryID,
			Description: in.Description,
			Address:     in.Address,
			OwnerID:     actor.ID,
		}
		if err := repo.CreateStore(c.Request.Context(), s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create store"})
			return
		}
		c.JSON(http.StatusCreated, s)
	}
}

// PUT /store/edit/:id
func updateStoreHandler(repo store.StoreRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if !policy.CanCreateStore(actor) {
			deny(c)
			return
		}
		s, err := repo.GetStore(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		if !policy.CanModifyStore(actor, c.Request.Method, s.OwnerID) {
			deny(c)
			return
		}
		var in storeRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		s.Name = in.StoreName
		s.Image = in.StoreImage
		s.CategoryID = in.CategoryID
		s.Description = in.Description
		s.Address = in.Address
		if err := repo.UpdateStore(c.Request.Context(), s); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update store"})
			return
		}
		out, err := repo.GetStore(c.Request.Context(), s.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reload store"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// DELETE /store/edit/:id
func deleteStoreHandler(repo store.StoreRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if !policy.CanCreateStore(actor) {
			deny(c)
			return
		}
		s, err := repo.GetStore(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		if !policy.CanModifyStore(actor, c.Request.Method, s.OwnerID) {
			deny(c)
			return
		}
		ok, err = repo.DeleteStoreCascade(c.Request.Context(), s.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete store"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type storeReviewRequest struct {
	Store   string `json:"store"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// GET /store_review?store=
func listStoreReviewsHandler(repo store.ReviewRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		rows, err := repo.ListReviews(c.Request.Context(), c.Query("store"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reviews"})
			return
		}
		out := make([]store.ReviewDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, store.ReviewDTO{
				Store: r.StoreID, Comment: r.Comment, Client: r.Client, Rating: r.Rating,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /store_review
func createStoreReviewHandler(repo store.ReviewRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var in storeReviewRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if in.Rating < 1 || in.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}
		if in.Store == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "store is required"})
			return
		}
		rv := &store.Review{
			ID:       uuid.NewString(),
			ClientID: actor.ID,
			StoreID:  in.Store,
			Rating:   in.Rating,
			Comment:  in.Comment,
		}
		if err := repo.CreateReview(c.Request.Context(), rv); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create review"})
			return
		}
		c.JSON(http.StatusCreated, rv)
	}
}

// PUT|DELETE /store_review/:id — reviews are write-once.
func mutateStoreReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		if !policy.ReviewImmutable(c.Request.Method) {
			deny(c)
			return
		}
		// unreachable for the mutating routes this is mounted on
		c.Status(http.StatusMethodNotAllowed)
	}
}
