package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velours_store_front/internal/services"
	"velours_store_front/internal/variants"
)

// GetProducts - GET /api/products
func GetProducts(c *gin.Context) {
	products, err := Remote.Products(c.Request.Context(), auth(c))
	if err != nil {
		log.Printf("❌ Erreur récupération produits: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération catalogue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

// GetProduct - GET /api/products/:id
// Renvoie le produit avec, pour chaque attribut, les valeurs encore
// sélectionnables (sélection vide = toutes les valeurs portées par au
// moins une variante).
func GetProduct(c *gin.Context) {
	p, err := Catalog.Product(c.Request.Context(), auth(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}

	validValues := make(map[string][]string)
	for _, attrID := range variants.AttributeIDs(*p) {
		values := variants.ValidValuesFor(*p, attrID, variants.Selection{})
		list := make([]string, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		validValues[attrID] = list
	}

	c.JSON(http.StatusOK, gin.H{
		"product":      p,
		"valid_values": validValues,
	})
}

// ProductOptions - POST /api/products/:id/options
// Reçoit la sélection courante d'attributs et renvoie les valeurs encore
// compatibles par attribut plus la variante résolue, s'il y en a une.
func ProductOptions(c *gin.Context) {
	var req struct {
		Selection map[string]string `json:"selection"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	p, err := Catalog.Product(c.Request.Context(), auth(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}

	sel := variants.Selection(req.Selection)
	validValues := make(map[string][]string)
	for _, attrID := range variants.AttributeIDs(*p) {
		values := variants.ValidValuesFor(*p, attrID, sel)
		list := make([]string, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		validValues[attrID] = list
	}

	resolved := variants.Resolve(*p, sel)
	c.JSON(http.StatusOK, gin.H{
		"valid_values": validValues,
		"variant":      resolved, // null tant que la sélection est incomplète
	})
}

// SearchProducts - GET /api/products/search?q=...
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' requis"})
		return
	}

	products, err := services.SearchProducts(query)
	if err != nil {
		log.Printf("❌ Erreur recherche: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la recherche"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

// BestSelling - GET /api/products/best-selling
func BestSelling(c *gin.Context) {
	products, err := Remote.BestSelling(c.Request.Context(), auth(c))
	if err != nil {
		log.Printf("❌ Erreur meilleures ventes: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération meilleures ventes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetCategories - GET /api/categories
func GetCategories(c *gin.Context) {
	categories, err := Remote.Categories(c.Request.Context(), auth(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération catégories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CategoryProducts - GET /api/categories/:id/products
func CategoryProducts(c *gin.Context) {
	products, err := Remote.CategoryProducts(c.Request.Context(), auth(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération produits de la catégorie"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

// GetMe - GET /api/me
// Sert l'instantané de session si présent, sinon interroge l'API distante
// et met l'instantané à jour.
func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	if user, ok := Sessions.Profile(userID); ok {
		c.JSON(http.StatusOK, user)
		return
	}

	user, err := Remote.Me(c.Request.Context(), auth(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération profil"})
		return
	}
	if err := Sessions.SaveProfile(userID, *user); err != nil {
		log.Printf("⚠️ Erreur sauvegarde session %s: %v", userID, err)
	}
	c.JSON(http.StatusOK, user)
}
