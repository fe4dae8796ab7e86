package cart

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Notifier remplace l'événement "cartUpdated" du front historique par un
// publish/subscribe explicite : chaque vue (badge, page panier, WebSocket)
// s'abonne et relit le panier à chaque notification.
type Notifier struct {
	mu    sync.Mutex
	subs  map[string]map[chan struct{}]struct{} // userID → abonnés
	redis *redis.Client                         // optionnel, pour les autres instances
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[chan struct{}]struct{})}
}

// Subscribe enregistre un abonné pour un utilisateur. Le second retour
// désinscrit — à appeler en defer.
func (n *Notifier) Subscribe(userID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	if n.subs[userID] == nil {
		n.subs[userID] = make(map[chan struct{}]struct{})
	}
	n.subs[userID][ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		delete(n.subs[userID], ch)
		if len(n.subs[userID]) == 0 {
			delete(n.subs, userID)
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

// Notify signale un changement de panier. L'envoi est non bloquant : un
// abonné en retard rate des signaux intermédiaires mais relira l'état final.
func (n *Notifier) Notify(userID string) {
	n.notifyLocal(userID)
	if n.redis != nil {
		if err := n.redis.Publish(context.Background(), "cart:"+userID, "updated").Err(); err != nil {
			log.Printf("⚠️ Erreur publication Redis cart:%s: %v", userID, err)
		}
	}
}

func (n *Notifier) notifyLocal(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[userID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// AttachRedis relie le notifier au pub/sub Redis : les notifications
// partent vers les autres instances et celles des autres instances sont
// rediffusées aux abonnés locaux.
func (n *Notifier) AttachRedis(client *redis.Client) {
	n.redis = client

	pubsub := client.PSubscribe(context.Background(), "cart:*")
	go func() {
		for msg := range pubsub.Channel() {
			userID := strings.TrimPrefix(msg.Channel, "cart:")
			n.notifyLocal(userID)
		}
	}()
	log.Println("✅ Synchronisation panier inter-instances activée (Redis pub/sub)")
}
