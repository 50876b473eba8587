package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"foodbridge/internal/models/db_models"
	mem "foodbridge/pkg/memcache"
	"foodbridge/pkg/utils"
)

const (
	ctxAccountID = "account_id"
	ctxRole      = "role"
	ctxTokenID   = "token_id"
	ctxExpiresAt = "token_expires_at"
)

func JWTAuthMiddleware(issuer *utils.TokenIssuer, store mem.TokenStore) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		if _, revoked := store.Peek(mem.RevokedSessionKey(claims.ID)); revoked {
			utils.RespondError(c, http.StatusUnauthorized, "Session has been logged out")
			c.Abort()
			return
		}

		var issuedAt time.Time
		if claims.IssuedAt != nil {
			issuedAt = claims.IssuedAt.Time
		}
		if mem.AccountSessionRevoked(store, claims.AccountID, issuedAt) {
			utils.RespondError(c, http.StatusUnauthorized, "Session is no longer valid, please log in again")
			c.Abort()
			return
		}

		c.Set(ctxAccountID, claims.AccountID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ctxExpiresAt, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// RequireCapability lets the request through only when the caller's role
// carries capability.
func RequireCapability(capability db_models.Capability) gin.HandlerFunc {

	return func(c *gin.Context) {
		if !GetRole(c).Can(capability) {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetAccountID(c *gin.Context) uint {
	id, _ := c.Get(ctxAccountID)
	v, _ := id.(uint)
	return v
}

func GetRole(c *gin.Context) db_models.Role {
	return db_models.Role(c.GetString(ctxRole))
}

func GetTokenID(c *gin.Context) string {
	return c.GetString(ctxTokenID)
}

func GetTokenExpiry(c *gin.Context) time.Time {
	return c.GetTime(ctxExpiresAt)
}
