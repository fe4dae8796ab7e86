package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velours_store_front/internal/models"
)

// GetAllRoles - GET /api/admin/roles
func GetAllRoles(c *gin.Context) {
	roles, err := Remote.Roles(c.Request.Context(), auth(c))
	if err != nil {
		log.Printf("❌ Erreur récupération rôles: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération rôles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles, "total": len(roles)})
}

// CreateRole - POST /api/admin/roles
func CreateRole(c *gin.Context) {
	var req struct {
		Name        string   `json:"name" binding:"required"`
		DisplayName string   `json:"display_name" binding:"required"`
		Description string   `json:"description"`
		Permissions []string `json:"permissions" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	role := models.Role{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Permissions: req.Permissions,
		IsActive:    true,
	}

	created, err := Remote.CreateRole(c.Request.Context(), auth(c), role)
	if err != nil {
		log.Printf("❌ Erreur création rôle: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la création du rôle"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Rôle créé avec succès", "role": created})
}

// UpdateRole - PUT /api/admin/roles/:id
func UpdateRole(c *gin.Context) {
	var role models.Role
	if err := c.ShouldBindJSON(&role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if err := Remote.UpdateRole(c.Request.Context(), auth(c), c.Param("id"), role); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la mise à jour du rôle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rôle mis à jour avec succès"})
}

// DeleteRole - DELETE /api/admin/roles/:id
func DeleteRole(c *gin.Context) {
	if err := Remote.DeleteRole(c.Request.Context(), auth(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la suppression du rôle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rôle supprimé avec succès"})
}

// GetPermissions - GET /api/admin/permissions
func GetPermissions(c *gin.Context) {
	perms, err := Remote.Permissions(c.Request.Context(), auth(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération permissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"permissions": perms, "total": len(perms)})
}

// GetUsers - GET /api/admin/users
func GetUsers(c *gin.Context) {
	users, err := Remote.Users(c.Request.Context(), auth(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération utilisateurs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// AssignRole - POST /api/admin/roles/assign
func AssignRole(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		RoleID string `json:"role_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if err := Remote.AssignRole(c.Request.Context(), auth(c), req.UserID, req.RoleID); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de l'attribution du rôle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rôle attribué avec succès"})
}
