package admin

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"velours_store_front/internal/models"
)

// CreateVoucher - POST /api/admin/vouchers
func CreateVoucher(c *gin.Context) {
	var req struct {
		Code           string    `json:"code" binding:"required"`
		Type           string    `json:"type" binding:"required"` // "percentage" ou "fixed"
		Value          float64   `json:"value" binding:"required"`
		MinAmount      float64   `json:"min_amount"`
		MaxAmount      *float64  `json:"max_amount"`
		MaxUses        int       `json:"max_uses"`
		MaxUsesPerUser int       `json:"max_uses_per_user"`
		ExpiresAt      time.Time `json:"expires_at" binding:"required"`
		StartsAt       time.Time `json:"starts_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	// Validation du type
	if req.Type != "percentage" && req.Type != "fixed" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de bon invalide"})
		return
	}
	if req.Type == "percentage" && (req.Value <= 0 || req.Value > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pourcentage doit être entre 1 et 100"})
		return
	}
	if req.Type == "fixed" && req.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant fixe doit être positif"})
		return
	}

	if req.StartsAt.IsZero() {
		req.StartsAt = time.Now()
	}

	voucher := models.Voucher{
		Code:           strings.ToUpper(req.Code),
		Type:           req.Type,
		Value:          req.Value,
		MinAmount:      req.MinAmount,
		MaxAmount:      req.MaxAmount,
		MaxUses:        req.MaxUses,
		MaxUsesPerUser: req.MaxUsesPerUser,
		StartsAt:       req.StartsAt,
		ExpiresAt:      req.ExpiresAt,
		IsActive:       true,
	}

	created, err := Remote.CreateVoucher(c.Request.Context(), auth(c), voucher)
	if err != nil {
		log.Printf("❌ Erreur création bon: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la création du bon"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Bon créé avec succès", "voucher": created})
}

// UpdateVoucher - PUT /api/admin/vouchers/:id
func UpdateVoucher(c *gin.Context) {
	var voucher models.Voucher
	if err := c.ShouldBindJSON(&voucher); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if err := Remote.UpdateVoucher(c.Request.Context(), auth(c), c.Param("id"), voucher); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la mise à jour du bon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bon mis à jour avec succès"})
}

// DeleteVoucher - DELETE /api/admin/vouchers/:id
func DeleteVoucher(c *gin.Context) {
	if err := Remote.DeleteVoucher(c.Request.Context(), auth(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la suppression du bon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bon supprimé avec succès"})
}
