package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-community-forum/internal/core/auth"
	resp "go-community-forum/internal/transport/http/response"
)

const KeyClaims = "claims"

// AuthJWT is the request gate: extract bearer token, verify, attach the
// identity to the context or short-circuit with 401. Expired vs invalid is
// logged, never surfaced to the client.
func AuthJWT(j *auth.JWTer, l *zap.Logger, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("Unauthorized"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				l.Info("token expired", zap.String("path", c.FullPath()))
			} else {
				l.Warn("token rejected", zap.String("path", c.FullPath()))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("Unauthorized"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Fail("Forbidden"))
			return
		}
		c.Set(KeyClaims, claims)
		c.Next()
	}
}

// Identity reads the claims attached by AuthJWT. Handlers never re-parse
// the token.
func Identity(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
