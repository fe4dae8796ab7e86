package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireRole vérifie un rôle précis (ex: "shipper" pour le workflow livreur)
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, exists := c.Get("role")
		if !exists || current != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Rôle insuffisant", "required_role": role})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission vérifie une permission portée par le token
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
			c.Abort()
			return
		}

		// Le rôle admin passe tout
		if role, ok := c.Get("role"); ok && role == "admin" {
			c.Next()
			return
		}

		perms, _ := c.Get("permissions")
		if list, ok := perms.([]string); ok {
			for _, p := range list {
				if p == permission {
					c.Next()
					return
				}
			}
		}

		log.Printf("🚫 Permission refusée: %s pour utilisateur %v", permission, userID)
		c.JSON(http.StatusForbidden, gin.H{
			"error":               "Permission insuffisante",
			"required_permission": permission,
		})
		c.Abort()
	}
}
