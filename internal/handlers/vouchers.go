package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velours_store_front/internal/models"
	"velours_store_front/internal/utils"
)

// ValidateVoucherRules applique les règles d'un bon sur un montant de
// panier : fenêtre de validité, montant minimum, plafond d'utilisations,
// type percentage/fixed avec plafond de réduction éventuel.
func ValidateVoucherRules(v models.Voucher, total float64) models.VoucherValidation {
	invalid := func(msg string) models.VoucherValidation {
		return models.VoucherValidation{IsValid: false, ErrorMessage: msg}
	}

	now := time.Now()
	if !v.IsActive {
		return invalid("Ce bon n'est plus actif")
	}
	if !v.StartsAt.IsZero() && now.Before(v.StartsAt) {
		return invalid("Ce bon n'est pas encore valable")
	}
	if !v.ExpiresAt.IsZero() && now.After(v.ExpiresAt) {
		return invalid("Ce bon a expiré")
	}
	if v.MaxUses > 0 && v.UsedCount >= v.MaxUses {
		return invalid("Ce bon a atteint son nombre maximum d'utilisations")
	}
	if total < v.MinAmount {
		return invalid(fmt.Sprintf("Montant minimum de %.2f€ requis pour ce bon", v.MinAmount))
	}

	var discount float64
	switch v.Type {
	case "percentage":
		discount = total * v.Value / 100
	case "fixed":
		discount = v.Value
	default:
		return invalid("Type de bon invalide")
	}

	if v.MaxAmount != nil && discount > *v.MaxAmount {
		discount = *v.MaxAmount
	}
	if discount > total {
		discount = total
	}

	return models.VoucherValidation{
		IsValid:  true,
		Discount: discount,
		Type:     v.Type,
		Code:     v.Code,
	}
}

// ListVouchers - GET /api/vouchers
func ListVouchers(c *gin.Context) {
	vouchers, err := Remote.Vouchers(c.Request.Context(), auth(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération bons de réduction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vouchers": vouchers, "total": len(vouchers)})
}

// ValidateVoucher - POST /api/vouchers/validate
// Vérifie un code contre le total du panier courant, sans le consommer.
func ValidateVoucher(c *gin.Context) {
	userID := cartUser(c)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code requis"})
		return
	}

	voucher, err := Remote.Voucher(c.Request.Context(), auth(c), req.Code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Code de réduction introuvable"})
		return
	}

	validation := ValidateVoucherRules(*voucher, Cart.Total(userID))
	c.JSON(http.StatusOK, validation)
}

// VoucherQR - GET /api/vouchers/:code/qr
// Sert le code sous forme de QR PNG, à partager ou scanner en boutique.
func VoucherQR(c *gin.Context) {
	code := c.Param("code")

	// On vérifie que le bon existe avant de générer quoi que ce soit
	if _, err := Remote.Voucher(c.Request.Context(), auth(c), code); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Code de réduction introuvable"})
		return
	}

	png, err := utils.VoucherQR(code)
	if err != nil {
		log.Printf("❌ Erreur génération QR pour %s: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du QR code"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
