package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velours_store_front/internal/kvstore"
	"velours_store_front/internal/models"
)

func newTestStore() (*Store, kvstore.Store) {
	kv := kvstore.NewMemoryStore()
	return NewStore(kv, NewNotifier()), kv
}

func redS(qty int) models.CartItem {
	return models.CartItem{
		ProductID: "p1",
		Name:      "T-shirt",
		Price:     100,
		Quantity:  qty,
		Variant: &models.Variant{
			ID:    "v-rs",
			Price: 100,
			Attributes: []models.AttributePair{
				{AttributeID: "couleur", ValueID: "rouge"},
				{AttributeID: "taille", ValueID: "s"},
			},
		},
	}
}

func redM(qty int) models.CartItem {
	return models.CartItem{
		ProductID: "p1",
		Name:      "T-shirt",
		Price:     110,
		Quantity:  qty,
		Variant: &models.Variant{
			ID:    "v-rm",
			Price: 110,
			Attributes: []models.AttributePair{
				{AttributeID: "couleur", ValueID: "rouge"},
				{AttributeID: "taille", ValueID: "m"},
			},
		},
	}
}

func TestAddMergesSameIdentity(t *testing.T) {
	s, _ := newTestStore()

	require.NoError(t, s.Add("alice", redS(1)))

	// Même produit, mêmes paires mais dans l'ordre inverse : même ligne
	dup := redS(1)
	dup.Variant.Attributes = []models.AttributePair{
		{AttributeID: "taille", ValueID: "s"},
		{AttributeID: "couleur", ValueID: "rouge"},
	}
	require.NoError(t, s.Add("alice", dup))

	items := s.Load("alice")
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.ItemCount("alice"))
	assert.Equal(t, 200.0, s.Total("alice"))
}

func TestAddDistinctVariantsStaySeparate(t *testing.T) {
	s, _ := newTestStore()

	require.NoError(t, s.Add("alice", redS(1)))
	require.NoError(t, s.Add("alice", redM(1)))

	items := s.Load("alice")
	require.Len(t, items, 2)
	assert.Equal(t, 2, s.ItemCount("alice"))
	assert.Equal(t, 210.0, s.Total("alice"))
}

func TestAddWithoutVariant(t *testing.T) {
	s, _ := newTestStore()

	plain := models.CartItem{ProductID: "q1", Name: "Mug", Price: 10}
	require.NoError(t, s.Add("alice", plain)) // quantité 0 → 1
	require.NoError(t, s.Add("alice", models.CartItem{ProductID: "q1", Name: "Mug", Price: 10, Quantity: 2}))

	items := s.Load("alice")
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	s, _ := newTestStore()
	require.NoError(t, s.Add("alice", redS(2)))

	require.NoError(t, s.UpdateQuantity("alice", "p1", redS(0).Variant, 5))
	assert.Equal(t, 5, s.ExistingQuantity("alice", "p1", redS(0).Variant))

	// Quantité nulle = suppression de la ligne
	require.NoError(t, s.UpdateQuantity("alice", "p1", redS(0).Variant, 0))
	assert.Empty(t, s.Load("alice"))
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore()
	require.NoError(t, s.Add("alice", redS(1)))
	require.NoError(t, s.Add("alice", redM(1)))

	require.NoError(t, s.Remove("alice", "p1", redS(0).Variant))

	items := s.Load("alice")
	require.Len(t, items, 1)
	assert.Equal(t, "v-rm", items[0].Variant.ID)
}

func TestLoadLoggedOut(t *testing.T) {
	s, _ := newTestStore()

	// Déconnecté : panier vide, jamais d'erreur
	assert.Empty(t, s.Load(""))
	assert.NoError(t, s.Add("", redS(1)))
	assert.NoError(t, s.Save("", nil))
	assert.Equal(t, 0, s.ItemCount(""))
}

func TestLoadCorruptPayload(t *testing.T) {
	s, kv := newTestStore()
	require.NoError(t, kv.Set("cart:alice", "{pas du json"))

	assert.Empty(t, s.Load("alice"))
}

func TestMigrateOldCart(t *testing.T) {
	s, kv := newTestStore()

	// Panier anonyme : Rouge/S ×1. Panier du compte : Rouge/S ×1 déjà présent.
	require.NoError(t, s.Add(AnonymousUser, redS(1)))
	require.NoError(t, s.Add("alice", redS(1)))

	require.NoError(t, s.MigrateOldCart("alice"))

	items := s.Load("alice")
	require.Len(t, items, 1, "fusion par identité, pas de doublon de ligne")
	assert.Equal(t, 2, items[0].Quantity)

	_, ok, err := kv.Get("cart:" + AnonymousUser)
	require.NoError(t, err)
	assert.False(t, ok, "la clé anonyme doit disparaître")

	// Idempotent : un second appel ne change rien
	require.NoError(t, s.MigrateOldCart("alice"))
	items = s.Load("alice")
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestMigrateOldCartCorruptLegacy(t *testing.T) {
	s, kv := newTestStore()
	require.NoError(t, kv.Set("cart:"+AnonymousUser, "###"))
	require.NoError(t, s.Add("alice", redS(1)))

	// Payload illisible : jeté sans erreur, panier du compte intact
	require.NoError(t, s.MigrateOldCart("alice"))

	_, ok, _ := kv.Get("cart:" + AnonymousUser)
	assert.False(t, ok)
	require.Len(t, s.Load("alice"), 1)
}

func TestClearUserCart(t *testing.T) {
	s, _ := newTestStore()
	require.NoError(t, s.Add("alice", redS(1)))
	require.NoError(t, s.Add("bob", redM(1)))

	require.NoError(t, s.ClearUserCart("alice"))

	assert.Empty(t, s.Load("alice"))
	assert.Len(t, s.Load("bob"), 1)
}

func TestClearAllCarts(t *testing.T) {
	s, _ := newTestStore()
	require.NoError(t, s.Add("alice", redS(1)))
	require.NoError(t, s.Add("bob", redM(1)))

	require.NoError(t, s.ClearAllCarts())

	assert.Empty(t, s.Load("alice"))
	assert.Empty(t, s.Load("bob"))
}

func TestClearCartDisplayKeepsData(t *testing.T) {
	s, _ := newTestStore()
	n := NewNotifier()
	s.notifier = n
	require.NoError(t, s.Add("alice", redS(2)))

	ch, cancel := n.Subscribe("alice")
	defer cancel()

	// Le logout masque l'affichage : notification envoyée, données intactes
	s.ClearCartDisplay("alice")

	select {
	case <-ch:
	default:
		t.Fatal("notification attendue au ClearCartDisplay")
	}
	require.Len(t, s.Load("alice"), 1)
	assert.Equal(t, 2, s.Load("alice")[0].Quantity)
}

func TestNotifierSubscribe(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe("alice")

	n.Notify("alice")
	select {
	case <-ch:
	default:
		t.Fatal("notification attendue")
	}

	// Envoi non bloquant : deux notifications d'affilée ne bloquent pas
	n.Notify("alice")
	n.Notify("alice")

	cancel()
	n.Notify("alice") // plus d'abonné, ne doit pas paniquer
}
