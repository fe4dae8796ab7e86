package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// parseToken valide un bearer token émis par le serveur d'auth distant.
// Renvoie (claims, expiré, erreur).
func parseToken(authHeader string) (jwt.MapClaims, bool, error) {
	if authHeader == "" {
		return nil, false, fmt.Errorf("token manquant")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false, fmt.Errorf("format Authorization invalide")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		// jwt/v5 signale l'expiration comme erreur de validation
		if strings.Contains(err.Error(), "expired") {
			return nil, true, err
		}
		return nil, false, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, false, fmt.Errorf("claims invalides")
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() > int64(exp) {
			return nil, true, fmt.Errorf("token expiré")
		}
	}

	return claims, false, nil
}

func setClaims(c *gin.Context, claims jwt.MapClaims, raw string) {
	if userID, ok := claims["user_id"].(string); ok {
		c.Set("user_id", userID)
	}
	c.Set("email", claims["email"])
	c.Set("role", claims["role"])
	c.Set("token", raw)

	// Les permissions arrivent dans le token, posées là par le serveur d'auth
	if rawPerms, ok := claims["permissions"].([]interface{}); ok {
		perms := make([]string, 0, len(rawPerms))
		for _, p := range rawPerms {
			if s, ok := p.(string); ok {
				perms = append(perms, s)
			}
		}
		c.Set("permissions", perms)
	}
}

func rawToken(authHeader string) string {
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 {
		return parts[1]
	}
	return ""
}

// AuthRequired protège les routes qui exigent un utilisateur connecté.
// Un token expiré renvoie 401 avec le drapeau "expired" : le front sait
// alors qu'il doit vider sa session et rediriger vers le login.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		claims, expired, err := parseToken(authHeader)
		if err != nil {
			if expired {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expiré", "expired": true})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			}
			c.Abort()
			return
		}

		if _, ok := claims["user_id"].(string); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id manquant"})
			c.Abort()
			return
		}

		setClaims(c, claims, rawToken(authHeader))
		c.Next()
	}
}

// OptionalAuth identifie l'utilisateur s'il est connecté mais laisse
// passer les anonymes — le storefront et le panier d'avant-connexion
// fonctionnent sans compte.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		claims, expired, err := parseToken(authHeader)
		if err != nil {
			if expired {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expiré", "expired": true})
				c.Abort()
				return
			}
			// Token invalide = traité comme anonyme
			c.Next()
			return
		}
		setClaims(c, claims, rawToken(authHeader))
		c.Next()
	}
}
