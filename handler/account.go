package handler

import (
	"net/http"
	"time"

	"tourjudge/etc"
	"tourjudge/middleware"
	"tourjudge/service/db"
	"tourjudge/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type loginReq struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// HandleLogin returns a JWT token if the admin credentials are correct.
// Login is disabled until an admin password hash is configured.
func HandleLogin(c *gin.Context) {
	var login loginReq
	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conf := etc.Config.Auth
	if conf.AdminPasswordHash == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "login is disabled"})
		return
	}
	if login.User != conf.AdminUser ||
		bcrypt.CompareHashAndPassword([]byte(conf.AdminPasswordHash), []byte(login.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
		return
	}

	token, _, err := utils.GenerateToken()
	if err != nil {
		log.WithError(err).Error("Failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// HandleLogout revokes the presented token until its natural expiry.
func HandleLogout(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 0 {
		key := utils.RevokedTokenKey(claims.TokenID)
		if err := db.RDB.Set(c.Request.Context(), key, 1, ttl).Err(); err != nil {
			log.WithError(err).Error("Failed to revoke token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
