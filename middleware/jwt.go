package middleware

import (
	"net/http"
	"strings"

	"tourjudge/service/db"
	"tourjudge/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const claimsKey = "claims"

// JWTMiddleware validates the bearer token and rejects revoked ones.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			log.WithError(err).Debug("Error parsing token")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		revoked, err := db.RDB.Exists(
			c.Request.Context(), utils.RevokedTokenKey(claims.TokenID)).Result()
		if err != nil {
			log.WithError(err).Error("Failed to check token revocation")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if revoked > 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(claimsKey, claims)
	}
}

// ClaimsFromContext returns the claims stored by JWTMiddleware, or nil.
func ClaimsFromContext(c *gin.Context) *utils.AdminClaims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.AdminClaims)
	return claims
}
