package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bekzatm/tezdeliver/internal/store"
)

type productRequest struct {
	StoreID      string `json:"store_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
	Description  string `json:"description"`
	Price        *int64 `json:"price"`
	Category     string `json:"category"`
}

func (in *productRequest) validate() string {
	if in.ProductName == "" || in.StoreID == "" {
		return "product_name and store_id are required"
	}
	if in.Price == nil || *in.Price < 0 {
		return "price must be a non-negative integer"
	}
	return ""
}

// GET /product?store=
func listProductsHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		out, err := repo.ListProducts(c.Request.Context(), c.Query("store"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list products"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getProductHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		p, err := repo.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createProductHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in productRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if msg := in.validate(); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		p := &store.Product{
			ID:          uuid.NewString(),
			StoreID:     in.StoreID,
			Name:        in.ProductName,
			Image:       in.ProductImage,
			Description: in.Description,
			Price:       *in.Price,
			Category:    in.Category,
		}
		if err := repo.CreateProduct(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create product"})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in productRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		p := &store.Product{
			ID:          c.Param("id"),
			Name:        in.ProductName,
			Image:       in.ProductImage,
			Description: in.Description,
			Category:    in.Category,
		}
		updatePrice := in.Price != nil
		if updatePrice {
			if *in.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative integer"})
				return
			}
			p.Price = *in.Price
		}
		if err := repo.UpdateProduct(c.Request.Context(), p, updatePrice); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update product"})
			return
		}
		out, err := repo.GetProduct(c.Request.Context(), p.ID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteProductHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		ok, err := repo.DeleteProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete product"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type comboRequest struct {
	StoreID     string `json:"store_id"`
	ComboName   string `json:"combo_name"`
	ComboImage  string `json:"combo_image"`
	Description string `json:"description"`
	Price       *int64 `json:"price"`
}

func listCombosHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		out, err := repo.ListCombos(c.Request.Context(), c.Query("store"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list combos"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func createComboHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in comboRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if in.ComboName == "" || in.StoreID == "" || in.Price == nil || *in.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "combo_name, store_id and a non-negative price are required"})
			return
		}
		combo := &store.ProductCombo{
			ID:          uuid.NewString(),
			StoreID:     in.StoreID,
			Name:        in.ComboName,
			Image:       in.ComboImage,
			Description: in.Description,
			Price:       *in.Price,
		}
		if err := repo.CreateCombo(c.Request.Context(), combo); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create combo"})
			return
		}
		c.JSON(http.StatusCreated, combo)
	}
}

func deleteComboHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		ok, err := repo.DeleteCombo(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete combo"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "combo not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type contactRequest struct {
	StoreID     string `json:"store_id"`
	ContactInfo string `json:"contact_info"`
}

func listContactsHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		out, err := repo.ListContacts(c.Request.Context(), c.Query("store"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list contacts"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func createContactHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in contactRequest
		if err := c.ShouldBindJSON(&in); err != nil || in.StoreID == "" || in.ContactInfo == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "store_id and contact_info are required"})
			return
		}
		contact := &store.ContactInfo{ID: uuid.NewString(), StoreID: in.StoreID, Phone: in.ContactInfo}
		if err := repo.CreateContact(c.Request.Context(), contact); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not create contact"})
			return
		}
		c.JSON(http.StatusCreated, contact)
	}
}

func deleteContactHandler(repo store.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		ok, err := repo.DeleteContact(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete contact"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
