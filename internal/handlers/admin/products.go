// Package admin regroupe les écrans d'administration de la passerelle :
// CRUD produits/variantes (relayé à l'API distante), rôles, bons et
// opérations d'entretien. Tout est derrière AuthRequired + RequireAdmin.
package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velours_store_front/internal/api"
	"velours_store_front/internal/cart"
	"velours_store_front/internal/models"
	"velours_store_front/internal/services"
	"velours_store_front/internal/variants"
)

var (
	Remote *api.Client
	Cart   *cart.Store
)

// Init branche les dépendances construites dans main
func Init(remote *api.Client, store *cart.Store) {
	Remote = remote
	Cart = store
}

func auth(c *gin.Context) api.Auth {
	return api.Auth{Token: c.GetString("token"), UserID: c.GetString("user_id")}
}

type productRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock_quantity"`
	Image       string  `json:"image"`
	CategoryID  string  `json:"category_id"`
}

// CreateProduct - POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	p := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	}

	created, err := Remote.CreateProduct(c.Request.Context(), auth(c), p)
	if err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la création du produit"})
		return
	}

	// Indexation pour la recherche, best-effort
	services.IndexProduct(*created)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Produit créé avec succès",
		"product": created,
	})
}

// UpdateProduct - PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	p := models.Product{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	}

	if err := Remote.UpdateProduct(c.Request.Context(), auth(c), c.Param("id"), p); err != nil {
		log.Printf("❌ Erreur mise à jour produit: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	services.IndexProduct(p)
	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour avec succès"})
}

// DeleteProduct - DELETE /api/admin/products/:id
func DeleteProduct(c *gin.Context) {
	if err := Remote.DeleteProduct(c.Request.Context(), auth(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la suppression"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}

// CreateProductVariant - POST /api/admin/products/:id/variants
// L'invariant du catalogue se vérifie ici, avant de relayer : pas deux
// fois le même attribut dans une variante, et pas deux variantes du même
// produit avec le même ensemble attribut/valeur.
func CreateProductVariant(c *gin.Context) {
	productID := c.Param("id")

	var req struct {
		Price      float64                `json:"price" binding:"required"`
		Stock      int                    `json:"stock_quantity"`
		Image      string                 `json:"image"`
		Attributes []models.AttributePair `json:"attributes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if variants.HasDuplicateAttribute(req.Attributes) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Un attribut apparaît deux fois dans la variante"})
		return
	}

	p, err := Remote.Product(c.Request.Context(), auth(c), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		return
	}

	if variants.IsDuplicate(req.Attributes, p.Variants) {
		c.JSON(http.StatusConflict, gin.H{"error": "Une variante avec ces attributs existe déjà"})
		return
	}

	variant := models.Variant{
		ProductID:  productID,
		Price:      req.Price,
		Stock:      req.Stock,
		Image:      req.Image,
		Attributes: req.Attributes,
	}

	created, err := Remote.CreateVariant(c.Request.Context(), auth(c), productID, variant)
	if err != nil {
		log.Printf("❌ Erreur création variante: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la création de la variante"})
		return
	}

	log.Printf("✅ Variante créée pour produit %s", productID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Variante créée avec succès",
		"variant": created,
	})
}

// ReindexProducts - POST /api/admin/products/reindex
// Recharge tout le catalogue distant dans Elasticsearch
func ReindexProducts(c *gin.Context) {
	products, err := Remote.Products(c.Request.Context(), auth(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération catalogue"})
		return
	}

	for _, p := range products {
		services.IndexProduct(p)
	}

	log.Printf("✅ %d produit(s) réindexé(s)", len(products))
	c.JSON(http.StatusOK, gin.H{"message": "Réindexation terminée", "total": len(products)})
}

// ClearAllCarts - DELETE /api/admin/carts
// Destructif : supprime les paniers persistés de TOUS les utilisateurs.
func ClearAllCarts(c *gin.Context) {
	if err := Cart.ClearAllCarts(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la purge des paniers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tous les paniers ont été supprimés"})
}
