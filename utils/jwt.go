package utils

import (
	"crypto/rand"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// TokenExpiration is the expiration time of the token.
const TokenExpiration = time.Hour * 24

var tokenSecret []byte

// AdminClaims is the custom claims type for JWT. TokenID identifies the
// token itself so that logout can revoke it.
type AdminClaims struct {
	TokenID uuid.UUID `json:"jti"`
	jwt.RegisteredClaims
}

// SetTokenSecret replaces the signing secret. An empty string keeps the
// random per-process secret generated at startup.
func SetTokenSecret(secret string) {
	if secret != "" {
		tokenSecret = []byte(secret)
	}
}

// GenerateToken generates a signed JWT for the admin principal.
func GenerateToken() (string, *AdminClaims, error) {
	claims := &AdminClaims{
		TokenID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "tourjudge",
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tokenSecret)
	return signed, claims, err
}

// RevokedTokenKey is the redis key marking a token as logged out.
func RevokedTokenKey(id uuid.UUID) string {
	return "tourjudge:revoked:" + id.String()
}

// ParseToken parses and verifies a JWT token.
func ParseToken(token string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return tokenSecret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func init() {
	rndUUID, err := uuid.NewRandomFromReader(rand.Reader)
	if err != nil {
		log.WithError(err).Fatal("Error creating UUID")
	}
	tokenSecret, err = rndUUID.MarshalBinary()
	if err != nil {
		log.WithError(err).Fatal("Error creating UUID")
	}
}
