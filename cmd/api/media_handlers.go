package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bekzatm/tezdeliver/internal/media"
)

// POST /upload — multipart field "file"; responds with the reference to
// store on the owning entity (store_image, product_image, message image ...).
func uploadHandler(storage *media.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
			return
		}
		defer src.Close()
		ref, err := storage.Save(src, fh.Filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store upload"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"file": ref})
	}
}
