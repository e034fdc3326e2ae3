package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bekzatm/tezdeliver/internal/cart"
	"github.com/bekzatm/tezdeliver/internal/store"
)

// GET /cart — the caller's own cart, created lazily on first access.
func getCartHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		crt, err := carts.GetOrCreate(c.Request.Context(), actor.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		rows, err := carts.Items(c.Request.Context(), crt.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart items"})
			return
		}
		c.JSON(http.StatusOK, cart.NewCartDTO(crt, rows))
	}
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// POST /cart_item
func addCartItemHandler(carts cart.Repository, products store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var in cartItemRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if in.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}
		if in.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be at least 1"})
			return
		}
		if _, err := products.GetProduct(c.Request.Context(), in.ProductID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product does not exist"})
			return
		}
		crt, err := carts.GetOrCreate(c.Request.Context(), actor.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		item, err := carts.AddItem(c.Request.Context(), crt.ID, in.ProductID, in.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add item"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

type cartItemUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// PUT /cart_item/:id
func updateCartItemHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in cartItemUpdateRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if in.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be at least 1"})
			return
		}
		if err := carts.UpdateItemQuantity(c.Request.Context(), c.Param("id"), in.Quantity); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		c.Status(http.StatusOK)
	}
}

// DELETE /cart_item/:id
func deleteCartItemHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		ok, err := carts.DeleteItem(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete cart item"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
