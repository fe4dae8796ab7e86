package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket - GET /api/cart/ws
// Synchronisation temps réel du panier entre onglets : chaque notification
// du store déclenche l'envoi d'un instantané complet (items + totaux).
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	changes, cancel := Notifier.Subscribe(userID)
	defer cancel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	sendSnapshot := func() error {
		return conn.WriteJSON(map[string]interface{}{
			"type":  "cart_updated",
			"items": Cart.Load(userID),
			"total": Cart.Total(userID),
			"count": Cart.ItemCount(userID),
		})
	}

	// État initial puis boucle d'écoute
	if err := sendSnapshot(); err != nil {
		return
	}

	for {
		select {
		case <-changes:
			if err := sendSnapshot(); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
