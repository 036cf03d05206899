package middleware

import (
	"strings"

	"quest_nos_backend/internal/config"
	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("admin", claims)
		c.Next()
	}
}

// RoleMiddleware restricts a route to the given admin roles; super_admin
// passes everything.
func RoleMiddleware(roles ...model.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := util.GetAdminFromContext(c)
		if admin == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if admin.Role == model.SuperAdmin || admin.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// FeatureMiddleware hides a route when the white-label capability is not
// enabled for the current client.
func FeatureMiddleware(features func() model.FeatureSet, f model.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !features().Has(f) {
			util.NotFound(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
