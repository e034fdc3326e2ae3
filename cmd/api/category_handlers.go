package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bekzatm/tezdeliver/internal/store"
)

type categoryRequest struct {
	CategoryName string `json:"category_name"`
}

func listCategoriesHandler(repo store.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		out, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list categories"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getCategoryHandler(repo store.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		cat, err := repo.GetCategory(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func createCategoryHandler(repo store.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in categoryRequest
		if err := c.ShouldBindJSON(&in); err != nil || in.CategoryName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_name is required"})
			return
		}
		cat := &store.Category{ID: uuid.NewString(), Name: in.CategoryName}
		if err := repo.CreateCategory(c.Request.Context(), cat); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create category"})
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

func updateCategoryHandler(repo store.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in categoryRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		cat := &store.Category{ID: c.Param("id"), Name: in.CategoryName}
		if err := repo.UpdateCategory(c.Request.Context(), cat); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func deleteCategoryHandler(repo store.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		ok, err := repo.DeleteCategory(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete category"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
