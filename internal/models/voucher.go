package models

import "time"

type Voucher struct {
	ID             string    `json:"_id"`
	Code           string    `json:"code"`
	Type           string    `json:"type"` // "percentage" ou "fixed"
	Value          float64   `json:"value"`
	MinAmount      float64   `json:"min_amount"`
	MaxAmount      *float64  `json:"max_amount,omitempty"` // Montant max de réduction
	MaxUses        int       `json:"max_uses"`
	UsedCount      int       `json:"used_count"`
	MaxUsesPerUser int       `json:"max_uses_per_user"`
	StartsAt       time.Time `json:"starts_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	IsActive       bool      `json:"is_active"`
}

type VoucherValidation struct {
	IsValid      bool    `json:"is_valid"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Discount     float64 `json:"discount"`
	Type         string  `json:"type"`
	Code         string  `json:"code"`
}
