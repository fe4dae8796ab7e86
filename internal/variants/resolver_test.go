package variants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velours_store_front/internal/models"
)

func pair(attr, val string) models.AttributePair {
	return models.AttributePair{AttributeID: attr, ValueID: val}
}

// tshirt : Rouge/S, Rouge/M, Bleu/S — pas de Bleu/M
func tshirt() models.Product {
	return models.Product{
		ID:   "p1",
		Name: "T-shirt",
		Variants: []models.Variant{
			{ID: "v-rs", ProductID: "p1", Price: 100, Stock: 2, Attributes: []models.AttributePair{pair("couleur", "rouge"), pair("taille", "s")}},
			{ID: "v-rm", ProductID: "p1", Price: 110, Stock: 0, Attributes: []models.AttributePair{pair("couleur", "rouge"), pair("taille", "m")}},
			{ID: "v-bs", ProductID: "p1", Price: 95, Stock: 5, Attributes: []models.AttributePair{pair("couleur", "bleu"), pair("taille", "s")}},
		},
	}
}

func TestSameAttributes(t *testing.T) {
	a := []models.AttributePair{pair("couleur", "rouge"), pair("taille", "s")}
	b := []models.AttributePair{pair("taille", "s"), pair("couleur", "rouge")}

	assert.True(t, SameAttributes(a, b), "l'ordre des paires ne doit pas compter")
	assert.False(t, SameAttributes(a, []models.AttributePair{pair("couleur", "rouge")}))
	assert.False(t, SameAttributes(a, []models.AttributePair{pair("couleur", "bleu"), pair("taille", "s")}))
	assert.True(t, SameAttributes(nil, nil))
}

func TestHasDuplicateAttribute(t *testing.T) {
	assert.False(t, HasDuplicateAttribute([]models.AttributePair{pair("couleur", "rouge"), pair("taille", "s")}))
	assert.True(t, HasDuplicateAttribute([]models.AttributePair{pair("couleur", "rouge"), pair("couleur", "bleu")}))
	assert.False(t, HasDuplicateAttribute(nil))
}

func TestIsDuplicate(t *testing.T) {
	p := tshirt()

	assert.True(t, IsDuplicate([]models.AttributePair{pair("taille", "s"), pair("couleur", "rouge")}, p.Variants))
	assert.False(t, IsDuplicate([]models.AttributePair{pair("couleur", "bleu"), pair("taille", "m")}, p.Variants))
}

func TestAttributeIDs(t *testing.T) {
	assert.Equal(t, []string{"couleur", "taille"}, AttributeIDs(tshirt()))
	assert.Empty(t, AttributeIDs(models.Product{ID: "q1"}))
}

func TestValidValuesFor(t *testing.T) {
	p := tshirt()

	tests := []struct {
		name      string
		attribute string
		sel       Selection
		want      map[string]bool
	}{
		{
			name:      "sans sélection, toutes les couleurs portées par une variante",
			attribute: "couleur",
			sel:       Selection{},
			want:      map[string]bool{"rouge": true, "bleu": true},
		},
		{
			name:      "bleu sélectionné, seule la taille S reste",
			attribute: "taille",
			sel:       Selection{"couleur": "bleu"},
			want:      map[string]bool{"s": true},
		},
		{
			name:      "rouge sélectionné, S et M restent",
			attribute: "taille",
			sel:       Selection{"couleur": "rouge"},
			want:      map[string]bool{"s": true, "m": true},
		},
		{
			name:      "taille M sélectionnée, seul rouge reste",
			attribute: "couleur",
			sel:       Selection{"taille": "m"},
			want:      map[string]bool{"rouge": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidValuesFor(p, tt.attribute, tt.sel))
		})
	}
}

// Une valeur absente de toute variante ne doit jamais être proposée,
// quelle que soit la sélection courante.
func TestValidValuesForNeverInventsValues(t *testing.T) {
	p := tshirt()

	declared := map[string]bool{}
	for _, v := range p.Variants {
		for _, pr := range v.Attributes {
			declared[pr.ValueID] = true
		}
	}

	selections := []Selection{
		{},
		{"couleur": "rouge"},
		{"couleur": "bleu"},
		{"taille": "s"},
		{"taille": "m"},
		{"couleur": "rouge", "taille": "s"},
	}
	for _, sel := range selections {
		for _, attr := range AttributeIDs(p) {
			for val := range ValidValuesFor(p, attr, sel) {
				assert.True(t, declared[val], "valeur %q inventée pour %q avec sélection %v", val, attr, sel)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	p := tshirt()

	t.Run("sélection complète et exacte", func(t *testing.T) {
		v := Resolve(p, Selection{"couleur": "rouge", "taille": "s"})
		require.NotNil(t, v)
		assert.Equal(t, "v-rs", v.ID)
	})

	t.Run("sélection partielle ne résout jamais", func(t *testing.T) {
		assert.Nil(t, Resolve(p, Selection{"couleur": "rouge"}))
		assert.Nil(t, Resolve(p, Selection{}))
	})

	t.Run("combinaison inexistante", func(t *testing.T) {
		assert.Nil(t, Resolve(p, Selection{"couleur": "bleu", "taille": "m"}))
	})

	t.Run("produit sans variantes", func(t *testing.T) {
		assert.Nil(t, Resolve(models.Product{ID: "q1", Stock: 5}, Selection{"couleur": "rouge"}))
	})
}

func TestResolverSelectAttribute(t *testing.T) {
	p := tshirt()
	r := NewResolver()

	// Sélection progressive : rien ne se résout tant qu'elle est incomplète
	assert.Nil(t, r.SelectAttribute(p, "couleur", "rouge"))

	v := r.SelectAttribute(p, "taille", "s")
	require.NotNil(t, v)
	assert.Equal(t, "v-rs", v.ID)
	assert.Equal(t, v, r.Resolved(p.ID))

	// Changer de valeur re-résout
	v = r.SelectAttribute(p, "taille", "m")
	require.NotNil(t, v)
	assert.Equal(t, "v-rm", v.ID)

	// Re-cliquer la même valeur désélectionne : plus de variante
	assert.Nil(t, r.SelectAttribute(p, "taille", "m"))
	assert.Nil(t, r.Resolved(p.ID))
	assert.Equal(t, Selection{"couleur": "rouge"}, r.Selection(p.ID))

	r.Reset(p.ID)
	assert.Empty(t, r.Selection(p.ID))
	assert.Nil(t, r.Resolved(p.ID))
}

func TestLabel(t *testing.T) {
	attrs := []models.Attribute{
		{ID: "couleur", Name: "couleur", DisplayName: "Couleur"},
		{ID: "taille", Name: "taille", DisplayName: "Taille"},
	}
	values := []models.AttributeValue{
		{ID: "rouge", AttributeID: "couleur", Value: "Rouge"},
		{ID: "s", AttributeID: "taille", Value: "S"},
	}

	p := tshirt()
	assert.Equal(t, "Couleur: Rouge, Taille: S", Label(&p.Variants[0], attrs, values))
	assert.Equal(t, "", Label(nil, attrs, values))

	// Référentiel incomplet : on omet la paire plutôt que d'afficher un ID brut
	assert.Equal(t, "Couleur: Rouge", Label(&p.Variants[1], attrs, values))
}
