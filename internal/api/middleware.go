package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/embermedia/creatorsite/internal/auth"
)

// allowedHeaders mirrors what the public site and admin console send
const allowedHeaders = "authorization, x-client-info, apikey, content-type"

// CORS returns a permissive CORS middleware for the given method list.
// Preflight OPTIONS requests are answered 200 directly.
func CORS(methods string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Allow-Methods", methods)

		if c.Request.Method == http.MethodOptions {
			c.String(http.StatusOK, "ok")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Preflight answers a CORS preflight request on its own route
func Preflight(methods string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Allow-Methods", methods)
		c.String(http.StatusOK, "ok")
	}
}

const sessionKey = "admin_session"

// RequireSession gates write routes behind a valid admin session token
func RequireSession(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		session, err := manager.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionFrom returns the verified session attached by RequireSession
func SessionFrom(c *gin.Context) *auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*auth.Session); ok {
			return s
		}
	}
	return nil
}
