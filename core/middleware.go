package core

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxPrincipalKey = "auth_principal"
)

// AuthRequired gates a route behind bearer-token authentication.
// Per request: no Authorization header and a header without a token segment
// are rejected with distinct 401 messages; a present token is verified by
// the TokenService and, on success, the resolved principal is attached to
// the gin context. The middleware performs no store access.
func AuthRequired(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			respondKO(c, http.StatusUnauthorized, msgNoAuthHeader)
			c.Abort()
			return
		}

		// Expected format: Authorization: Bearer <jwt>
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			respondKO(c, http.StatusUnauthorized, msgNoBearerToken)
			c.Abort()
			return
		}
		rawToken := parts[1]

		userID, err := tokens.Verify(rawToken)
		if err != nil {
			msg := msgTokenInvalid
			if errors.Is(err, ErrTokenExpired) {
				msg = msgTokenExpired
			}
			respondKO(c, http.StatusUnauthorized, msg)
			c.Abort()
			return
		}

		c.Set(ctxPrincipalKey, Principal{ID: userID, Token: rawToken})
		c.Next()
	}
}

// CurrentPrincipal returns the principal attached by AuthRequired.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(ctxPrincipalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// CORSMiddleware applies the permissive cross-origin policy of the original
// service: any origin, any method, any header. Preflight requests are
// answered directly.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "*")
		c.Header("Access-Control-Allow-Headers", "*")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}
