package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"velours_store_front/internal/api"
	"velours_store_front/internal/cart"
	"velours_store_front/internal/models"
	"velours_store_front/internal/session"
	"velours_store_front/internal/variants"
)

// CatalogSource abstrait les lectures catalogue de l'API distante pour
// pouvoir tester les handlers panier sans réseau
type CatalogSource interface {
	Product(ctx context.Context, a api.Auth, id string) (*models.Product, error)
	Attributes(ctx context.Context, a api.Auth) ([]models.Attribute, error)
	AttributeValues(ctx context.Context, a api.Auth) ([]models.AttributeValue, error)
}

var (
	Cart     *cart.Store
	Notifier *cart.Notifier
	Catalog  CatalogSource
	Remote   *api.Client
	Sessions *session.Manager
	Resolver = variants.NewResolver()
)

// Init branche les dépendances construites dans main
func Init(store *cart.Store, notifier *cart.Notifier, remote *api.Client, sessions *session.Manager) {
	Cart = store
	Notifier = notifier
	Catalog = remote
	Remote = remote
	Sessions = sessions
}

// auth reconstruit l'identité de l'appelant posée par le middleware JWT
func auth(c *gin.Context) api.Auth {
	return api.Auth{
		Token:  c.GetString("token"),
		UserID: c.GetString("user_id"),
	}
}

// cartUser renvoie le propriétaire du panier : l'utilisateur connecté,
// sinon le panier anonyme d'avant-connexion
func cartUser(c *gin.Context) string {
	if id := c.GetString("user_id"); id != "" {
		return id
	}
	return cart.AnonymousUser
}
