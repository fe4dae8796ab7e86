package models

import "time"

// Statuts du workflow livreur
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipping  = "shipping"
	OrderDelivered = "delivered"
	OrderFailed    = "failed"
)

type Order struct {
	ID          string     `json:"_id"`
	UserID      string     `json:"user_id"`
	Email       string     `json:"email,omitempty"`
	Items       []CartItem `json:"items"`
	Total       float64    `json:"total"`
	Discount    float64    `json:"discount,omitempty"`
	VoucherCode string     `json:"voucher_code,omitempty"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone,omitempty"`
	Status      string     `json:"status"`
	ShipperID   string     `json:"shipper_id,omitempty"`
	PaymentRef  string     `json:"payment_ref,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
