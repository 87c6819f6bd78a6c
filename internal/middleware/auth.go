package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"centavo/internal/config"
	apperrors "centavo/internal/errors"
)

// sessionSubject is the sole principal of this single-user application.
const sessionSubject = "owner"

func jwtKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// SessionClaims are the claims carried by a session token issued after
// a successful PIN check.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// GenerateSessionToken issues a signed session token for the owner.
func GenerateSessionToken() (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "centavo-api",
			Subject:   sessionSubject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// validateSessionToken parses and validates a session token.
func validateSessionToken(tokenString string) error {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey(), nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("invalid session token")
	}
	if claims.Subject != sessionSubject {
		return fmt.Errorf("unknown session subject")
	}
	return nil
}

// SessionGuard returns a Gin middleware that rejects requests without a
// valid Bearer session token.
func SessionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrUnauthorized.Code,
					"message": apperrors.ErrUnauthorized.Message,
				},
			})
			c.Abort()
			return
		}

		if err := validateSessionToken(strings.TrimPrefix(header, "Bearer ")); err != nil {
			c.JSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrUnauthorized.Code,
					"message": apperrors.ErrUnauthorized.Message,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
