package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bekzatm/tezdeliver/internal/auth"
	"github.com/bekzatm/tezdeliver/internal/policy"
	"github.com/bekzatm/tezdeliver/internal/user"
)

const actorKey = "actor"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func Logger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("rid", c.GetString("rid")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("http")
	}
}

// Auth requires a bearer access token and stores the resolved actor in the
// request context. Policy predicates read the actor from there instead of
// any ambient session state.
func Auth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		raw = strings.TrimPrefix(raw, "Bearer ")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is missing"})
			return
		}
		claims, err := tokens.Parse(raw, auth.KindAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		SetActor(c, policy.Actor{ID: claims.UserID, Role: user.Role(claims.Role)})
		c.Next()
	}
}

func SetActor(c *gin.Context, a policy.Actor) {
	c.Set(actorKey, a)
}

func ActorFrom(c *gin.Context) (policy.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return policy.Actor{}, false
	}
	a, ok := v.(policy.Actor)
	return a, ok
}
