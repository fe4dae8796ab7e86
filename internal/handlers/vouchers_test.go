package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"velours_store_front/internal/models"
)

func TestValidateVoucherRules(t *testing.T) {
	now := time.Now()
	maxDiscount := 15.0

	base := models.Voucher{
		Code:      "PROMO10",
		Type:      "percentage",
		Value:     10,
		IsActive:  true,
		StartsAt:  now.Add(-time.Hour),
		ExpiresAt: now.Add(time.Hour),
	}

	tests := []struct {
		name     string
		voucher  func() models.Voucher
		total    float64
		valid    bool
		discount float64
		errLike  string
	}{
		{
			name:     "pourcentage valide",
			voucher:  func() models.Voucher { return base },
			total:    200,
			valid:    true,
			discount: 20,
		},
		{
			name: "montant fixe valide",
			voucher: func() models.Voucher {
				v := base
				v.Type = "fixed"
				v.Value = 5
				return v
			},
			total:    50,
			valid:    true,
			discount: 5,
		},
		{
			name: "plafond de réduction appliqué",
			voucher: func() models.Voucher {
				v := base
				v.MaxAmount = &maxDiscount
				return v
			},
			total:    500, // 10% = 50, plafonné à 15
			valid:    true,
			discount: 15,
		},
		{
			name: "réduction jamais supérieure au total",
			voucher: func() models.Voucher {
				v := base
				v.Type = "fixed"
				v.Value = 100
				return v
			},
			total:    30,
			valid:    true,
			discount: 30,
		},
		{
			name: "bon inactif",
			voucher: func() models.Voucher {
				v := base
				v.IsActive = false
				return v
			},
			total:   100,
			valid:   false,
			errLike: "plus actif",
		},
		{
			name: "bon pas encore valable",
			voucher: func() models.Voucher {
				v := base
				v.StartsAt = now.Add(time.Hour)
				return v
			},
			total:   100,
			valid:   false,
			errLike: "pas encore",
		},
		{
			name: "bon expiré",
			voucher: func() models.Voucher {
				v := base
				v.ExpiresAt = now.Add(-time.Minute)
				return v
			},
			total:   100,
			valid:   false,
			errLike: "expiré",
		},
		{
			name: "plafond d'utilisations atteint",
			voucher: func() models.Voucher {
				v := base
				v.MaxUses = 3
				v.UsedCount = 3
				return v
			},
			total:   100,
			valid:   false,
			errLike: "maximum d'utilisations",
		},
		{
			name: "montant minimum non atteint",
			voucher: func() models.Voucher {
				v := base
				v.MinAmount = 50
				return v
			},
			total:   30,
			valid:   false,
			errLike: "minimum",
		},
		{
			name: "type inconnu",
			voucher: func() models.Voucher {
				v := base
				v.Type = "bogus"
				return v
			},
			total:   100,
			valid:   false,
			errLike: "Type de bon invalide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateVoucherRules(tt.voucher(), tt.total)
			assert.Equal(t, tt.valid, res.IsValid)
			if tt.valid {
				assert.InDelta(t, tt.discount, res.Discount, 0.001)
			} else {
				assert.Contains(t, res.ErrorMessage, tt.errLike)
			}
		})
	}
}
