package routes

import (
	"github.com/gin-gonic/gin"

	"velours_store_front/internal/handlers"
	"velours_store_front/internal/handlers/admin"
	"velours_store_front/internal/middleware"
	"velours_store_front/internal/models"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// --- Storefront (anonyme autorisé) ---
	store := api.Group("")
	store.Use(middleware.OptionalAuth())
	{
		store.GET("/products", handlers.GetProducts)
		store.GET("/products/best-selling", handlers.BestSelling)
		store.GET("/products/search", middleware.SearchRateLimit(), handlers.SearchProducts)
		store.GET("/products/:id", handlers.GetProduct)
		store.POST("/products/:id/options", handlers.ProductOptions)
		store.GET("/categories", handlers.GetCategories)
		store.GET("/categories/:id/products", handlers.CategoryProducts)

		// Panier : fonctionne aussi pour les anonymes (panier d'avant-connexion)
		store.GET("/cart", handlers.GetCart)
		store.POST("/cart/add", middleware.CartRateLimit(), handlers.AddToCart)
		store.PUT("/cart", handlers.UpdateCartItem)
		store.DELETE("/cart/item", handlers.RemoveFromCart)
		store.DELETE("/cart/clear", handlers.ClearCart)

		store.GET("/vouchers", handlers.ListVouchers)
		store.POST("/vouchers/validate", handlers.ValidateVoucher)
		store.GET("/vouchers/:code/qr", handlers.VoucherQR)
	}

	// --- Connecté ---
	user := api.Group("")
	user.Use(middleware.AuthRequired())
	{
		user.GET("/me", handlers.GetMe)
		user.POST("/cart/migrate", handlers.MigrateCart)
		user.POST("/cart/logout", handlers.Logout)
		user.GET("/cart/ws", handlers.CartWebSocket)
		user.POST("/checkout", handlers.Checkout)
		user.GET("/orders", handlers.MyOrders)
		user.GET("/orders/:id", handlers.GetOrder)
	}

	// --- Workflow livreur ---
	shipper := api.Group("/shipper")
	shipper.Use(middleware.AuthRequired(), middleware.RequireRole("shipper"))
	{
		shipper.GET("/orders", handlers.ShipperOrders)
		shipper.POST("/orders/:id/accept", handlers.ShipperAccept)
		shipper.PUT("/orders/:id/status", handlers.ShipperUpdateStatus)
	}

	// --- Administration ---
	adm := api.Group("/admin")
	adm.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adm.POST("/products", middleware.RequirePermission(models.PermProductsCreate), admin.CreateProduct)
		adm.PUT("/products/:id", middleware.RequirePermission(models.PermProductsEdit), admin.UpdateProduct)
		adm.DELETE("/products/:id", middleware.RequirePermission(models.PermProductsDelete), admin.DeleteProduct)
		adm.POST("/products/:id/variants", middleware.RequirePermission(models.PermProductsEdit), admin.CreateProductVariant)
		adm.POST("/products/reindex", admin.ReindexProducts)

		adm.POST("/images/upload", handlers.UploadProductImage)

		adm.POST("/vouchers", middleware.RequirePermission(models.PermVouchersCreate), admin.CreateVoucher)
		adm.PUT("/vouchers/:id", middleware.RequirePermission(models.PermVouchersEdit), admin.UpdateVoucher)
		adm.DELETE("/vouchers/:id", middleware.RequirePermission(models.PermVouchersDelete), admin.DeleteVoucher)

		adm.GET("/roles", admin.GetAllRoles)
		adm.POST("/roles", admin.CreateRole)
		adm.PUT("/roles/:id", admin.UpdateRole)
		adm.DELETE("/roles/:id", admin.DeleteRole)
		adm.POST("/roles/assign", admin.AssignRole)
		adm.GET("/permissions", admin.GetPermissions)
		adm.GET("/users", admin.GetUsers)

		adm.DELETE("/carts", admin.ClearAllCarts)
	}
}
