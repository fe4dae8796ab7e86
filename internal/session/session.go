// Package session garde un instantané du profil (utilisateur + rôle) dans
// le magasin clé/valeur, à côté des clés panier. Il est vidé quand l'API
// distante signale un token expiré.
package session

import (
	"encoding/json"
	"log"

	"velours_store_front/internal/kvstore"
	"velours_store_front/internal/models"
)

const keyPrefix = "session:"

type Manager struct {
	kv kvstore.Store
}

func NewManager(kv kvstore.Store) *Manager {
	return &Manager{kv: kv}
}

// SaveProfile mémorise l'instantané du profil renvoyé par l'API distante
func (m *Manager) SaveProfile(userID string, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.kv.Set(keyPrefix+userID, string(data))
}

// Profile relit l'instantané. Absent ou corrompu → (nil, false).
func (m *Manager) Profile(userID string) (*models.User, bool) {
	data, ok, err := m.kv.Get(keyPrefix + userID)
	if err != nil || !ok {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Clear efface l'instantané de session. Appelé sur 401 "expired" — le
// panier, lui, n'est jamais touché ici.
func (m *Manager) Clear(userID string) {
	if userID == "" {
		return
	}
	if err := m.kv.Delete(keyPrefix + userID); err != nil {
		log.Printf("⚠️ Erreur suppression session %s: %v", userID, err)
	}
}
