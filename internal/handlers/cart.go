package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velours_store_front/internal/models"
	"velours_store_front/internal/variants"
)

// GetCart - GET /api/cart
func GetCart(c *gin.Context) {
	userID := cartUser(c)
	items := Cart.Load(userID)
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": Cart.ItemCount(userID),
		"total": Cart.Total(userID),
	})
}

//
// 🟢 POST /api/cart/add
//
// Le contrôle de stock vit ici, au point d'appel, pas dans le store :
// quantité déjà au panier + quantité demandée ≤ stock de la variante (ou
// du produit sans variantes). Le chiffre de stock vient de la dernière
// lecture de l'API — deux onglets peuvent donc passer le contrôle sur une
// valeur périmée, l'arbitrage final appartient au backend à la commande.
func AddToCart(c *gin.Context) {
	userID := cartUser(c)

	var input struct {
		ProductID string            `json:"product_id" binding:"required"`
		Quantity  int               `json:"quantity"`
		Selection map[string]string `json:"selection"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	p, err := Catalog.Product(c.Request.Context(), auth(c), input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// Un produit à variantes exige une sélection complète : aucune
	// variante partielle ou "par défaut" n'entre jamais au panier
	var resolved *models.Variant
	if p.HasVariants() {
		resolved = variants.Resolve(*p, variants.Selection(input.Selection))
		if resolved == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Veuillez sélectionner toutes les options du produit"})
			return
		}
	}

	stock := p.AvailableStock(resolved)
	existing := Cart.ExistingQuantity(userID, p.ID, resolved)
	if existing+input.Quantity > stock {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Stock insuffisant",
			"product":   p.Name,
			"available": stock,
			"in_cart":   existing,
			"requested": input.Quantity,
		})
		return
	}

	price := p.Price
	image := p.Image
	if resolved != nil {
		price = resolved.Price
		if resolved.Image != "" {
			image = resolved.Image
		}
	}

	item := models.CartItem{
		ProductID:    p.ID,
		Name:         p.Name,
		Image:        image,
		Price:        price,
		Quantity:     input.Quantity,
		Variant:      resolved,
		VariantLabel: variantLabel(c, resolved),
	}

	if err := Cart.Add(userID, item); err != nil {
		log.Printf("❌ Erreur ajout panier %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'ajout au panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   Cart.Load(userID),
		"count":   Cart.ItemCount(userID),
		"total":   Cart.Total(userID),
	})
}

// variantLabel construit le résumé lisible ("Couleur: Rouge, Taille: M").
// Best-effort : si les référentiels sont indisponibles, pas de label.
func variantLabel(c *gin.Context, v *models.Variant) string {
	if v == nil {
		return ""
	}
	attrs, err := Catalog.Attributes(c.Request.Context(), auth(c))
	if err != nil {
		return ""
	}
	values, err := Catalog.AttributeValues(c.Request.Context(), auth(c))
	if err != nil {
		return ""
	}
	return variants.Label(v, attrs, values)
}

// lineVariant reconstruit l'identité de ligne envoyée par le client :
// la liste des paires attribut/valeur de la variante, ou rien
func lineVariant(pairs []models.AttributePair) *models.Variant {
	if len(pairs) == 0 {
		return nil
	}
	return &models.Variant{Attributes: pairs}
}

// UpdateCartItem - PUT /api/cart
// Une quantité ≤ 0 supprime la ligne.
func UpdateCartItem(c *gin.Context) {
	userID := cartUser(c)

	var input struct {
		ProductID  string                 `json:"product_id" binding:"required"`
		Quantity   int                    `json:"quantity"`
		Attributes []models.AttributePair `json:"attributes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if err := Cart.UpdateQuantity(userID, input.ProductID, lineVariant(input.Attributes), input.Quantity); err != nil {
		log.Printf("❌ Erreur mise à jour panier %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": Cart.Load(userID),
		"count": Cart.ItemCount(userID),
		"total": Cart.Total(userID),
	})
}

//
// ❌ DELETE /api/cart/item
//
func RemoveFromCart(c *gin.Context) {
	userID := cartUser(c)

	var input struct {
		ProductID  string                 `json:"product_id" binding:"required"`
		Attributes []models.AttributePair `json:"attributes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if err := Cart.Remove(userID, input.ProductID, lineVariant(input.Attributes)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   Cart.Load(userID),
	})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := cartUser(c)
	if err := Cart.ClearUserCart(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}

// MigrateCart - POST /api/cart/migrate
// À appeler juste après le login : le panier anonyme devient le panier de
// l'utilisateur, la clé anonyme disparaît. Un second appel ne fait rien.
func MigrateCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	if err := Cart.MigrateOldCart(userID); err != nil {
		log.Printf("❌ Erreur migration panier %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur migration du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier migré",
		"items":   Cart.Load(userID),
	})
}

// Logout - POST /api/cart/logout
// Ne supprime rien : on rafraîchit seulement l'affichage, le panier
// persiste et réapparaîtra à la prochaine connexion du même compte.
func Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}
	Cart.ClearCartDisplay(userID)
	Sessions.Clear(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté, panier conservé"})
}
