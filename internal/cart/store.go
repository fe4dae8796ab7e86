// Package cart persiste le panier de chaque utilisateur dans un magasin
// clé/valeur injecté et prévient les vues à chaque mutation. Les carnets
// survivent à la déconnexion : on n'efface jamais les données au logout,
// seulement l'affichage.
package cart

import (
	"encoding/json"
	"log"

	"velours_store_front/internal/kvstore"
	"velours_store_front/internal/models"
	"velours_store_front/internal/variants"
)

const (
	keyPrefix = "cart:"
	// AnonymousUser est le panier d'avant-connexion, migré au login
	AnonymousUser = "anonymous"
)

type Store struct {
	kv       kvstore.Store
	notifier *Notifier
}

func NewStore(kv kvstore.Store, notifier *Notifier) *Store {
	return &Store{kv: kv, notifier: notifier}
}

func userKey(userID string) string {
	return keyPrefix + userID
}

// sameLine décide si une ligne de panier correspond à (productID, variante).
// Même produit, et soit aucune variante des deux côtés, soit le même
// ensemble attribut/valeur (ordre indifférent).
func sameLine(item models.CartItem, productID string, v *models.Variant) bool {
	if item.ProductID != productID {
		return false
	}
	if item.Variant == nil && v == nil {
		return true
	}
	if item.Variant == nil || v == nil {
		return false
	}
	return variants.SameAttributes(item.Variant.Attributes, v.Attributes)
}

// Load renvoie les lignes de panier de l'utilisateur. Pas d'utilisateur
// (userID vide) = déconnecté : panier vide, jamais une erreur. Un payload
// corrompu est ignoré de la même façon.
func (s *Store) Load(userID string) []models.CartItem {
	if userID == "" {
		return []models.CartItem{}
	}
	data, ok, err := s.kv.Get(userKey(userID))
	if err != nil || !ok || data == "" {
		return []models.CartItem{}
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		log.Printf("⚠️ Panier illisible pour %s, ignoré: %v", userID, err)
		return []models.CartItem{}
	}
	return items
}

// Save persiste la liste complète puis notifie. No-op sans utilisateur.
func (s *Store) Save(userID string, items []models.CartItem) error {
	if userID == "" {
		return nil
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(userKey(userID), string(data)); err != nil {
		return err
	}
	s.notifier.Notify(userID)
	return nil
}

// Add fusionne l'article avec une ligne existante de même identité
// (quantités additionnées), sinon l'ajoute en fin de liste.
func (s *Store) Add(userID string, item models.CartItem) error {
	if userID == "" {
		return nil
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	items := s.Load(userID)
	found := false
	for i := range items {
		if sameLine(items[i], item.ProductID, item.Variant) {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}
	return s.Save(userID, items)
}

// UpdateQuantity fixe la quantité d'une ligne. Une quantité ≤ 0 supprime
// la ligne plutôt que de stocker une quantité non positive.
func (s *Store) UpdateQuantity(userID, productID string, v *models.Variant, quantity int) error {
	if userID == "" {
		return nil
	}
	if quantity <= 0 {
		return s.Remove(userID, productID, v)
	}
	items := s.Load(userID)
	for i := range items {
		if sameLine(items[i], productID, v) {
			items[i].Quantity = quantity
			break
		}
	}
	return s.Save(userID, items)
}

// Remove supprime la ligne correspondante
func (s *Store) Remove(userID, productID string, v *models.Variant) error {
	if userID == "" {
		return nil
	}
	items := s.Load(userID)
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if !sameLine(item, productID, v) {
			kept = append(kept, item)
		}
	}
	return s.Save(userID, kept)
}

// ItemCount recompte les quantités à chaque appel, jamais de cache
func (s *Store) ItemCount(userID string) int {
	count := 0
	for _, item := range s.Load(userID) {
		count += item.Quantity
	}
	return count
}

// Total recalcule prix × quantité sur la liste persistée
func (s *Store) Total(userID string) float64 {
	total := 0.0
	for _, item := range s.Load(userID) {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ExistingQuantity renvoie la quantité déjà au panier pour cette identité.
// Les pages produit s'en servent pour le contrôle de stock avant Add.
func (s *Store) ExistingQuantity(userID, productID string, v *models.Variant) int {
	for _, item := range s.Load(userID) {
		if sameLine(item, productID, v) {
			return item.Quantity
		}
	}
	return 0
}

// MigrateOldCart transfère une seule fois le panier anonyme vers le panier
// de l'utilisateur fraîchement connecté, puis supprime la clé anonyme.
// Idempotent : une fois la clé absente, l'appel suivant ne fait rien.
// Un payload anonyme corrompu est jeté, jamais remonté en erreur.
func (s *Store) MigrateOldCart(userID string) error {
	if userID == "" || userID == AnonymousUser {
		return nil
	}
	data, ok, err := s.kv.Get(userKey(AnonymousUser))
	if err != nil || !ok || data == "" {
		return nil
	}

	var legacy []models.CartItem
	if err := json.Unmarshal([]byte(data), &legacy); err != nil {
		log.Printf("⚠️ Ancien panier illisible, supprimé: %v", err)
		return s.kv.Delete(userKey(AnonymousUser))
	}

	// Fusion par identité avec le panier déjà persisté sous ce compte
	items := s.Load(userID)
	for _, li := range legacy {
		merged := false
		for i := range items {
			if sameLine(items[i], li.ProductID, li.Variant) {
				items[i].Quantity += li.Quantity
				merged = true
				break
			}
		}
		if !merged {
			items = append(items, li)
		}
	}

	if err := s.kv.Delete(userKey(AnonymousUser)); err != nil {
		return err
	}
	log.Printf("✅ Panier anonyme migré vers %s (%d ligne(s))", userID, len(legacy))
	return s.Save(userID, items)
}

// ClearUserCart vide le panier d'un utilisateur (après commande)
func (s *Store) ClearUserCart(userID string) error {
	if userID == "" {
		return nil
	}
	if err := s.kv.Delete(userKey(userID)); err != nil {
		return err
	}
	s.notifier.Notify(userID)
	return nil
}

// ClearAllCarts supprime les paniers de TOUS les utilisateurs.
// Opération administrative destructive.
func (s *Store) ClearAllCarts() error {
	keys, err := s.kv.Keys(keyPrefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.kv.Delete(key); err != nil {
			return err
		}
		s.notifier.Notify(key[len(keyPrefix):])
	}
	log.Printf("🧹 %d panier(s) supprimé(s)", len(keys))
	return nil
}

// ClearCartDisplay ne touche pas aux données : au logout on masque
// seulement l'affichage, le panier réapparaît à la reconnexion.
func (s *Store) ClearCartDisplay(userID string) {
	s.notifier.Notify(userID)
}
