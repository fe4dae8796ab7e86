// Package variants résout une sélection d'attributs (Couleur → Rouge,
// Taille → M…) vers la déclinaison concrète d'un produit. C'était dupliqué
// sur quatre écrans côté front historique — ici une seule implémentation.
package variants

import (
	"sort"
	"strings"
	"sync"

	"velours_store_front/internal/models"
)

// Selection associe chaque attribute_id à la value_id choisie
type Selection map[string]string

// SameAttributes compare deux ensembles de paires attribut/valeur sans
// tenir compte de l'ordre. C'est l'identité d'une variante pour la fusion
// des lignes de panier et la détection de doublons.
func SameAttributes(a, b []models.AttributePair) bool {
	if len(a) != len(b) {
		return false
	}
	return attributeKey(a) == attributeKey(b)
}

// attributeKey sérialise les paires triées par attribute_id
func attributeKey(pairs []models.AttributePair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.AttributeID+"="+p.ValueID)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// HasDuplicateAttribute détecte un attribute_id répété dans la même liste
// (une variante ne peut pas déclarer deux fois "Couleur")
func HasDuplicateAttribute(pairs []models.AttributePair) bool {
	seen := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if seen[p.AttributeID] {
			return true
		}
		seen[p.AttributeID] = true
	}
	return false
}

// IsDuplicate vérifie qu'aucune variante existante du produit ne porte
// déjà le même ensemble attribut/valeur
func IsDuplicate(pairs []models.AttributePair, existing []models.Variant) bool {
	for _, v := range existing {
		if SameAttributes(pairs, v.Attributes) {
			return true
		}
	}
	return false
}

// AttributeIDs liste les attributs apparaissant dans au moins une variante
// du produit. Tous doivent être sélectionnés pour résoudre une variante.
func AttributeIDs(p models.Product) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, v := range p.Variants {
		for _, pair := range v.Attributes {
			if !seen[pair.AttributeID] {
				seen[pair.AttributeID] = true
				ids = append(ids, pair.AttributeID)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// ValidValuesFor renvoie les value_id encore sélectionnables pour
// attributeID : celles portées par au moins une variante dont les *autres*
// attributs déjà sélectionnés correspondent à la sélection courante.
// Sélectionner "Couleur: Rouge" masque ainsi les tailles qui n'existent
// dans aucune variante rouge.
func ValidValuesFor(p models.Product, attributeID string, sel Selection) map[string]bool {
	valid := make(map[string]bool)
	for _, v := range p.Variants {
		candidate := ""
		compatible := true
		for _, pair := range v.Attributes {
			if pair.AttributeID == attributeID {
				candidate = pair.ValueID
				continue
			}
			if chosen, ok := sel[pair.AttributeID]; ok && chosen != pair.ValueID {
				compatible = false
				break
			}
		}
		if compatible && candidate != "" {
			valid[candidate] = true
		}
	}
	return valid
}

// Resolve cherche la variante qui correspond exactement à la sélection.
// Règle stricte : tous les attributs portés par une variante quelconque du
// produit doivent être sélectionnés, et l'ensemble des paires de la
// variante doit être égal à la sélection. Une sélection partielle ne
// résout jamais de variante par défaut.
func Resolve(p models.Product, sel Selection) *models.Variant {
	if !p.HasVariants() {
		return nil
	}
	for _, required := range AttributeIDs(p) {
		if _, ok := sel[required]; !ok {
			return nil
		}
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		if len(v.Attributes) != len(sel) {
			continue
		}
		match := true
		for _, pair := range v.Attributes {
			if sel[pair.AttributeID] != pair.ValueID {
				match = false
				break
			}
		}
		if match {
			return v
		}
	}
	return nil
}

// Resolver garde la sélection en cours par produit et la variante résolue.
// C'est l'état de l'écran produit, côté passerelle.
type Resolver struct {
	mu         sync.Mutex
	selections map[string]Selection
	resolved   map[string]*models.Variant
}

func NewResolver() *Resolver {
	return &Resolver{
		selections: make(map[string]Selection),
		resolved:   make(map[string]*models.Variant),
	}
}

// SelectAttribute bascule une valeur (re-sélectionner désélectionne) puis
// recalcule la variante résolue. Renvoie nil tant que la sélection est
// incomplète ou sans correspondance.
func (r *Resolver) SelectAttribute(p models.Product, attributeID, valueID string) *models.Variant {
	r.mu.Lock()
	defer r.mu.Unlock()

	sel, ok := r.selections[p.ID]
	if !ok {
		sel = Selection{}
		r.selections[p.ID] = sel
	}

	if sel[attributeID] == valueID {
		delete(sel, attributeID)
	} else {
		sel[attributeID] = valueID
	}

	v := Resolve(p, sel)
	r.resolved[p.ID] = v
	return v
}

// Selection renvoie une copie de la sélection courante du produit
func (r *Resolver) Selection(productID string) Selection {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := Selection{}
	for k, v := range r.selections[productID] {
		out[k] = v
	}
	return out
}

// Resolved renvoie la variante actuellement résolue pour le produit
func (r *Resolver) Resolved(productID string) *models.Variant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved[productID]
}

// Reset oublie la sélection d'un produit (fermeture de l'écran)
func (r *Resolver) Reset(productID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.selections, productID)
	delete(r.resolved, productID)
}

// Label construit le résumé lisible d'une variante ("Couleur: Rouge, Taille: M")
// à partir des référentiels d'attributs et de valeurs
func Label(v *models.Variant, attrs []models.Attribute, values []models.AttributeValue) string {
	if v == nil {
		return ""
	}
	attrName := make(map[string]string, len(attrs))
	for _, a := range attrs {
		name := a.DisplayName
		if name == "" {
			name = a.Name
		}
		attrName[a.ID] = name
	}
	valName := make(map[string]string, len(values))
	for _, av := range values {
		valName[av.ID] = av.Value
	}

	pairs := make([]models.AttributePair, len(v.Attributes))
	copy(pairs, v.Attributes)
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].AttributeID < pairs[j].AttributeID })

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		an, av := attrName[p.AttributeID], valName[p.ValueID]
		if an == "" || av == "" {
			continue
		}
		parts = append(parts, an+": "+av)
	}
	return strings.Join(parts, ", ")
}
