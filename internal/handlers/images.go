package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velours_store_front/internal/services"
)

// UploadProductImage - POST /api/admin/images/upload
// L'image part directement vers l'hébergeur (MinIO), seule l'URL finale
// est renvoyée — l'admin la colle ensuite dans la fiche produit.
func UploadProductImage(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	productID := c.PostForm("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'product_id' est requis"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}

	url, err := services.UploadProductImage(productID, fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image uploadée avec succès",
		"url":     url,
	})
}
