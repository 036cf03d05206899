package util

import (
	"time"

	"quest_nos_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	AdminID string          `json:"admin_id"`
	Role    model.AdminRole `json:"role"`
	Email   string          `json:"email"`
	jwt.RegisteredClaims
}

func GenerateJWT(admin *model.AdminUser, secret string, expiration time.Duration) (string, error) {
	expirationTime := time.Now().Add(expiration)

	claims := &Claims{
		AdminID: admin.ID,
		Role:    admin.Role,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}

func GetAdminFromContext(c *gin.Context) *Claims {
	admin, exists := c.Get("admin")
	if !exists {
		return nil
	}
	claims, ok := admin.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
