package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"velours_store_front/internal/api"
	"velours_store_front/internal/cart"
	"velours_store_front/internal/config"
	"velours_store_front/internal/handlers"
	"velours_store_front/internal/handlers/admin"
	"velours_store_front/internal/kvstore"
	"velours_store_front/internal/middleware"
	"velours_store_front/internal/routes"
	"velours_store_front/internal/services"
	"velours_store_front/internal/session"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY manquant — paiement carte indisponible")
	} else {
		log.Println("✅ Stripe initialisé")
	}

	// Stockage panier/session : Redis en production, mémoire en repli
	notifier := cart.NewNotifier()
	var kv kvstore.Store
	if redisStore, err := kvstore.ConnectRedis(); err != nil {
		log.Println("⚠️ Redis indisponible, stockage en mémoire :", err)
		kv = kvstore.NewMemoryStore()
	} else {
		kv = redisStore
		notifier.AttachRedis(redisStore.Client())
		middleware.RateLimitRedis = redisStore.Client()
	}

	services.ConnectElastic()
	services.ConnectMinio()

	cartStore := cart.NewStore(kv, notifier)
	sessions := session.NewManager(kv)

	remote := api.NewClient()
	// 401 "expired" de l'API distante → on jette l'instantané de session.
	// Le panier persisté n'est jamais touché.
	remote.OnExpired(sessions.Clear)

	handlers.Init(cartStore, notifier, remote, sessions)
	admin.Init(remote, cartStore)

	r := gin.Default()
	r.Use(corsConfig())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Passerelle Velours lancée sur le port", port)
	r.Run(":" + port)
}

func corsConfig() gin.HandlerFunc {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = strings.Split(origins, ",")
	cfg.AllowCredentials = true
	cfg.AddAllowHeaders("Authorization")
	return cors.New(cfg)
}
