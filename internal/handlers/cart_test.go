package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velours_store_front/internal/api"
	"velours_store_front/internal/cart"
	"velours_store_front/internal/kvstore"
	"velours_store_front/internal/models"
)

// fakeCatalog sert un catalogue en mémoire à la place de l'API distante
type fakeCatalog struct {
	products map[string]models.Product
	attrs    []models.Attribute
	values   []models.AttributeValue
}

func (f *fakeCatalog) Product(_ context.Context, _ api.Auth, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("produit inconnu")
	}
	return &p, nil
}

func (f *fakeCatalog) Attributes(_ context.Context, _ api.Auth) ([]models.Attribute, error) {
	return f.attrs, nil
}

func (f *fakeCatalog) AttributeValues(_ context.Context, _ api.Auth) ([]models.AttributeValue, error) {
	return f.values, nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[string]models.Product{
			// Produit à variantes : Rouge/S en stock (2), Rouge/M épuisé
			"p1": {
				ID:   "p1",
				Name: "T-shirt",
				Variants: []models.Variant{
					{
						ID: "v-rs", ProductID: "p1", Price: 100, Stock: 2,
						Attributes: []models.AttributePair{
							{AttributeID: "couleur", ValueID: "rouge"},
							{AttributeID: "taille", ValueID: "s"},
						},
					},
					{
						ID: "v-rm", ProductID: "p1", Price: 110, Stock: 0,
						Attributes: []models.AttributePair{
							{AttributeID: "couleur", ValueID: "rouge"},
							{AttributeID: "taille", ValueID: "m"},
						},
					},
				},
			},
			// Produit simple, stock 5
			"q1": {ID: "q1", Name: "Mug", Price: 10, Stock: 5},
		},
		attrs: []models.Attribute{
			{ID: "couleur", Name: "couleur", DisplayName: "Couleur"},
			{ID: "taille", Name: "taille", DisplayName: "Taille"},
		},
		values: []models.AttributeValue{
			{ID: "rouge", AttributeID: "couleur", Value: "Rouge"},
			{ID: "s", AttributeID: "taille", Value: "S"},
			{ID: "m", AttributeID: "taille", Value: "M"},
		},
	}
}

func setupCartRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	Cart = cart.NewStore(kvstore.NewMemoryStore(), cart.NewNotifier())
	Catalog = testCatalog()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
	})
	r.GET("/cart", GetCart)
	r.POST("/cart/add", AddToCart)
	r.PUT("/cart", UpdateCartItem)
	r.DELETE("/cart/item", RemoveFromCart)
	r.DELETE("/cart/clear", ClearCart)
	r.POST("/cart/migrate", MigrateCart)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cartResponse(t *testing.T, w *httptest.ResponseRecorder) (items []models.CartItem, count int, total float64) {
	t.Helper()
	var resp struct {
		Items []models.CartItem `json:"items"`
		Count int               `json:"count"`
		Total float64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Items, resp.Count, resp.Total
}

func TestAddToCartMergesSameVariant(t *testing.T) {
	r := setupCartRouter("alice")
	sel := map[string]string{"couleur": "rouge", "taille": "s"}

	w := doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "p1", "quantity": 1, "selection": sel})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "p1", "quantity": 1, "selection": sel})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	items, count, total := cartResponse(t, w)
	require.Len(t, items, 1, "deux ajouts de la même variante = une seule ligne")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, count)
	assert.Equal(t, 200.0, total)
	assert.Equal(t, "Couleur: Rouge, Taille: S", items[0].VariantLabel)

	// Le stock de Rouge/S est 2 : un troisième ajout dépasse
	w = doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "p1", "quantity": 1, "selection": sel})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Stock insuffisant")
}

func TestAddToCartOutOfStockVariant(t *testing.T) {
	r := setupCartRouter("alice")

	// Rouge/M existe mais stock 0 : refusé dès le premier ajout
	w := doJSON(r, http.MethodPost, "/cart/add", gin.H{
		"product_id": "p1",
		"selection":  map[string]string{"couleur": "rouge", "taille": "m"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Stock insuffisant")
}

func TestAddToCartIncompleteSelection(t *testing.T) {
	r := setupCartRouter("alice")

	tests := []struct {
		name string
		sel  map[string]string
	}{
		{"aucune sélection", nil},
		{"sélection partielle", map[string]string{"couleur": "rouge"}},
		{"combinaison inexistante", map[string]string{"couleur": "bleu", "taille": "m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "p1", "selection": tt.sel})
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "sélectionner toutes les options")
		})
	}
}

func TestAddToCartSimpleProductStockLimit(t *testing.T) {
	r := setupCartRouter("alice")

	// Stock 5 : cinq ajouts passent, jusqu'à existant == stock
	for i := 0; i < 5; i++ {
		w := doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "q1"})
		require.Equal(t, http.StatusOK, w.Code, "ajout %d: %s", i+1, w.Body.String())
	}

	w := doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "q1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Stock insuffisant")

	_, count, total := cartResponse(t, doJSON(r, http.MethodGet, "/cart", nil))
	assert.Equal(t, 5, count)
	assert.Equal(t, 50.0, total)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r := setupCartRouter("alice")

	w := doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "absent"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemZeroRemoves(t *testing.T) {
	r := setupCartRouter("alice")

	w := doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "q1", "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/cart", gin.H{"product_id": "q1", "quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)

	items, count, _ := cartResponse(t, w)
	assert.Empty(t, items)
	assert.Equal(t, 0, count)
}

func TestRemoveFromCartByIdentity(t *testing.T) {
	r := setupCartRouter("alice")

	selS := map[string]string{"couleur": "rouge", "taille": "s"}
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "p1", "selection": selS}).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/cart/add", gin.H{"product_id": "q1"}).Code)

	// On retire la ligne variante en renvoyant ses paires, ordre inversé
	w := doJSON(r, http.MethodDelete, "/cart/item", gin.H{
		"product_id": "p1",
		"attributes": []models.AttributePair{
			{AttributeID: "taille", ValueID: "s"},
			{AttributeID: "couleur", ValueID: "rouge"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	items, _, _ := cartResponse(t, doJSON(r, http.MethodGet, "/cart", nil))
	require.Len(t, items, 1)
	assert.Equal(t, "q1", items[0].ProductID)
}

func TestAnonymousCartThenMigration(t *testing.T) {
	// Avant connexion : le panier vit sous l'utilisateur anonyme
	anon := setupCartRouter("")
	w := doJSON(anon, http.MethodPost, "/cart/add", gin.H{"product_id": "q1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Connexion : même store, mais identité "alice" — migration du panier
	logged := gin.New()
	logged.Use(func(c *gin.Context) { c.Set("user_id", "alice") })
	logged.GET("/cart", GetCart)
	logged.POST("/cart/migrate", MigrateCart)

	items, _, _ := cartResponse(t, doJSON(logged, http.MethodGet, "/cart", nil))
	assert.Empty(t, items, "avant migration, le panier du compte est vide")

	w = doJSON(logged, http.MethodPost, "/cart/migrate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items, count, _ := cartResponse(t, doJSON(logged, http.MethodGet, "/cart", nil))
	require.Len(t, items, 1)
	assert.Equal(t, 2, count)

	// Le panier anonyme a été consommé
	items, _, _ = cartResponse(t, doJSON(anon, http.MethodGet, "/cart", nil))
	assert.Empty(t, items)

	// Second appel : no-op
	require.Equal(t, http.StatusOK, doJSON(logged, http.MethodPost, "/cart/migrate", nil).Code)
	_, count, _ = cartResponse(t, doJSON(logged, http.MethodGet, "/cart", nil))
	assert.Equal(t, 2, count)
}

func TestMigrateCartRequiresAuth(t *testing.T) {
	r := setupCartRouter("")
	w := doJSON(r, http.MethodPost, "/cart/migrate", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
