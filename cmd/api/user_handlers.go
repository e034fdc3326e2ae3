package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bekzatm/tezdeliver/internal/user"
)

func listUsersHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		out, err := repo.List(c.Request.Context(), intQuery(c, "limit"), intQuery(c, "offset"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func getUserHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		u, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

type updateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// PUT /user/:id — role is deliberately absent from the payload; it cannot
// change after registration.
func updateUserHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		var in updateUserRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		u := &user.User{
			ID:          c.Param("id"),
			Username:    in.Username,
			Email:       in.Email,
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			PhoneNumber: in.PhoneNumber,
		}
		updatePassword := in.Password != ""
		if updatePassword {
			hash, err := user.HashPassword(in.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
				return
			}
			u.PasswordHash = hash
		}
		if err := repo.Update(c.Request.Context(), u, updatePassword); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
			return
		}
		out, err := repo.GetByID(c.Request.Context(), u.ID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteUserHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireActor(c); !ok {
			return
		}
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
