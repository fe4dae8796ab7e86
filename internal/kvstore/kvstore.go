// Package kvstore abstrait le stockage clé/valeur du panier et de la
// session. En production c'est Redis, dans les tests une simple map.
package kvstore

type Store interface {
	// Get renvoie (valeur, trouvé, erreur). Une clé absente n'est pas une erreur.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// Keys liste les clés commençant par prefix
	Keys(prefix string) ([]string, error)
}
