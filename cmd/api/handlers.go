package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bekzatm/tezdeliver/internal/httpx"
	"github.com/bekzatm/tezdeliver/internal/policy"
)

// requireActor pulls the authenticated actor set by the auth middleware.
// Handlers behind the middleware should always find one; a miss is a 401.
func requireActor(c *gin.Context) (policy.Actor, bool) {
	a, ok := httpx.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return a, ok
}

func deny(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
}

func intQuery(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
