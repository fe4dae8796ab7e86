// Package api est le client de l'API commerce distante. Elle reste un
// collaborateur opaque : on lui passe le bearer token de l'appelant et on
// consomme du JSON, rien de plus. Pas de retry — un appel raté échoue une
// fois et l'utilisateur re-déclenche l'action.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// ErrSessionExpired est renvoyée quand l'API répond 401 avec le drapeau
// "expired" : la session locale est vidée et le client doit se reconnecter.
var ErrSessionExpired = errors.New("session expirée, reconnexion requise")

// ErrNotFound couvre les 404 de l'API distante
var ErrNotFound = errors.New("ressource introuvable")

type Client struct {
	baseURL string
	http    *http.Client
	// onExpired est appelé avec l'userID quand un token est signalé expiré
	onExpired func(userID string)
}

func NewClient() *Client {
	base := os.Getenv("COMMERCE_API_URL")
	if base == "" {
		base = "http://localhost:5000/api"
		log.Println("⚠️ COMMERCE_API_URL non configuré, utilisation de", base)
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// OnExpired branche le nettoyage de session (voir internal/session)
func (c *Client) OnExpired(fn func(userID string)) {
	c.onExpired = fn
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Expired bool   `json:"expired"`
}

// do exécute l'appel, attache le bearer token et décode la réponse dans
// out (si non nil). Gestion globale du 401 "expired" ici, une seule fois.
func (c *Client) do(ctx context.Context, token, userID, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Expired {
			log.Printf("🔒 Token expiré pour %s, session locale vidée", userID)
			if c.onExpired != nil {
				c.onExpired(userID)
			}
			return ErrSessionExpired
		}
		return fmt.Errorf("non autorisé: %s", apiErr.Message)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
		return fmt.Errorf("API distante %d: %s", resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeList décode un tableau JSON en ignorant les entrées malformées
// (champ _id absent, etc.) au lieu de rejeter toute la réponse.
func decodeList[T any](raw []json.RawMessage, label string) []T {
	items := make([]T, 0, len(raw))
	for _, entry := range raw {
		var item T
		if err := json.Unmarshal(entry, &item); err != nil {
			log.Printf("⚠️ Entrée %s malformée ignorée: %v", label, err)
			continue
		}
		items = append(items, item)
	}
	return items
}
