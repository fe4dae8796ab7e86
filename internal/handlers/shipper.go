package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velours_store_front/internal/models"
)

// Workflow livreur : la passerelle relaie les opérations vers l'API
// distante, le rôle "shipper" est exigé par le routeur.

// ShipperOrders - GET /api/shipper/orders
func ShipperOrders(c *gin.Context) {
	orders, err := Remote.ShipperOrders(c.Request.Context(), auth(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur récupération des livraisons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

// ShipperAccept - POST /api/shipper/orders/:id/accept
func ShipperAccept(c *gin.Context) {
	if err := Remote.ShipperAccept(c.Request.Context(), auth(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de l'acceptation de la livraison"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Livraison acceptée"})
}

// ShipperUpdateStatus - PUT /api/shipper/orders/:id/status
// Statuts acceptés : delivered, failed.
func ShipperUpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut requis"})
		return
	}

	if req.Status != models.OrderDelivered && req.Status != models.OrderFailed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide", "allowed": []string{models.OrderDelivered, models.OrderFailed}})
		return
	}

	if err := Remote.ShipperUpdateStatus(c.Request.Context(), auth(c), c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur mise à jour du statut de livraison"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Statut de livraison mis à jour"})
}
