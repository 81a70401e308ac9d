package web

import (
	"net/http"
	"strings"

	"github.com/doduclong204/vietvibe/pkg/auth"
	"github.com/gin-gonic/gin"
)

const (
	identityKey    = "identity"
	accessTokenKey = "access_token"
)

// requireAuth validates the Bearer token and stores the resolved
// identity on the request context.
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		identity, err := auth.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, identity)
		c.Set(accessTokenKey, token)
		c.Next()
	}
}

// optionalAuth resolves an identity when a valid token is present but
// lets anonymous requests through.
func optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			if identity, err := auth.ValidateAccessToken(token); err == nil {
				c.Set(identityKey, identity)
				c.Set(accessTokenKey, token)
			}
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(auth.Identity); ok {
			return identity
		}
	}
	return auth.Identity{}
}

func accessTokenFrom(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}
