package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"velours_store_front/internal/models"
	"velours_store_front/internal/utils"
	"velours_store_front/internal/variants"
)

// Checkout - POST /api/checkout
// Valide le panier, re-vérifie le stock sur les chiffres frais de l'API,
// applique l'éventuel bon de réduction, crée le PaymentIntent Stripe puis
// passe la commande auprès de l'API distante. Le panier est vidé après.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		Address       string `json:"address" binding:"required"`
		Phone         string `json:"phone"`
		VoucherCode   string `json:"voucher_code"`
		PaymentMethod string `json:"payment_method"` // "card" ou "cod"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	// ✅ 1. Panier
	items := Cart.Load(userID)
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	// ✅ 2. Re-vérification du stock ligne par ligne, sur données fraîches
	for i, item := range items {
		p, err := Catalog.Product(c.Request.Context(), auth(c), item.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + item.ProductID})
			return
		}

		stock := p.Stock
		price := p.Price
		if item.Variant != nil {
			fresh := findVariant(p, item.Variant)
			if fresh == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Déclinaison plus disponible", "product": p.Name})
				return
			}
			stock = fresh.Stock
			price = fresh.Price
		}

		if stock < item.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Stock insuffisant",
				"product":   p.Name,
				"available": stock,
				"requested": item.Quantity,
			})
			return
		}

		// Rafraîchir nom et prix avec les données actuelles
		items[i].Name = p.Name
		items[i].Price = price
	}

	// ✅ 3. Total
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	// ✅ 4. Bon de réduction (si fourni)
	var discount float64
	var voucherCode string
	if req.VoucherCode != "" {
		voucher, err := Remote.Voucher(c.Request.Context(), auth(c), req.VoucherCode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code de réduction introuvable"})
			return
		}
		validation := ValidateVoucherRules(*voucher, total)
		if !validation.IsValid {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.ErrorMessage})
			return
		}
		discount = validation.Discount
		voucherCode = validation.Code
		log.Printf("✅ Bon appliqué: %s (%.2f€ de réduction)", voucherCode, discount)
	}

	finalPrice := total - discount
	if finalPrice < 0 {
		finalPrice = 0
	}

	// ✅ 5. Paiement Stripe (sauf contre-remboursement)
	paymentRef := ""
	if req.PaymentMethod != "cod" {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(int64(finalPrice * 100)),
			Currency: stripe.String(string(stripe.CurrencyEUR)),
			Metadata: map[string]string{
				"user_id": userID,
				"voucher": voucherCode,
			},
		}
		if email != "" {
			params.ReceiptEmail = stripe.String(email)
		}
		pi, err := paymentintent.New(params)
		if err != nil {
			log.Printf("❌ Erreur Stripe: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la création du paiement"})
			return
		}
		paymentRef = pi.ID
	}

	// ✅ 6. Commande auprès de l'API distante
	order := models.Order{
		UserID:      userID,
		Email:       email,
		Items:       items,
		Total:       finalPrice,
		Discount:    discount,
		VoucherCode: voucherCode,
		Address:     req.Address,
		Phone:       req.Phone,
		Status:      models.OrderPending,
		PaymentRef:  paymentRef,
	}

	created, err := Remote.CreateOrder(c.Request.Context(), auth(c), order)
	if err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la création de la commande"})
		return
	}

	// ✅ 7. Confirmation par e-mail, en arrière-plan
	if email != "" {
		go sendOrderConfirmation(*created, email)
	}

	// ✅ 8. Panier vidé une fois la commande passée
	if err := Cart.ClearUserCart(userID); err != nil {
		log.Printf("⚠️ Erreur vidage panier après commande: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Commande créée avec succès",
		"order":       created,
		"payment_ref": paymentRef,
	})
}

// findVariant retrouve la déclinaison fraîche du produit par identité
// d'attributs (l'_id peut changer côté API, pas la combinaison)
func findVariant(p *models.Product, v *models.Variant) *models.Variant {
	for i := range p.Variants {
		if variants.SameAttributes(p.Variants[i].Attributes, v.Attributes) {
			return &p.Variants[i]
		}
	}
	return nil
}

// sendOrderConfirmation génère la facture PDF et envoie l'e-mail.
// Chrome indisponible → e-mail sans pièce jointe, jamais d'échec bloquant.
func sendOrderConfirmation(order models.Order, email string) {
	html := utils.GenerateOrderConfirmationHTML(order)

	pdf, err := utils.RenderInvoicePDF(html)
	if err != nil {
		log.Printf("⚠️ Facture PDF indisponible pour %s: %v", order.ID, err)
		pdf = nil
	}

	if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande Velours", html, pdf); err != nil {
		log.Printf("❌ Erreur envoi confirmation à %s: %v", email, err)
	}
}

// MyOrders - GET /api/orders
func MyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	orders, err := Remote.MyOrders(c.Request.Context(), auth(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder - GET /api/orders/:id
func GetOrder(c *gin.Context) {
	ctx, cancelCtx := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancelCtx()

	order, err := Remote.Order(ctx, auth(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	c.JSON(http.StatusOK, order)
}
