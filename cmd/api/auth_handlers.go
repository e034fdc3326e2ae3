package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bekzatm/tezdeliver/internal/auth"
)

// POST /register
func registerHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in auth.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload: " + err.Error()})
			return
		}
		if in.Username == "" || in.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}
		sess, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, auth.ErrUsernameTaken) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
			return
		}
		c.JSON(http.StatusCreated, sess)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /login
func loginHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		sess, err := svc.Login(c.Request.Context(), in.Username, in.Password)
		if err != nil {
			// one generic message regardless of the cause
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

type logoutRequest struct {
	Refresh string `json:"refresh"`
}

// POST /logout
func logoutHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in logoutRequest
		if err := c.ShouldBindJSON(&in); err != nil || in.Refresh == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token is required"})
			return
		}
		if err := svc.Logout(c.Request.Context(), in.Refresh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or already used refresh token"})
			return
		}
		c.Status(http.StatusResetContent)
	}
}
