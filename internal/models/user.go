package models

import "time"

type User struct {
	ID     string `json:"_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Role regroupe un ensemble de permissions
type Role struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	Permissions []string  `json:"permissions"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Permission struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Permissions prédéfinies
var (
	PermProductsView   = "products.view"
	PermProductsCreate = "products.create"
	PermProductsEdit   = "products.edit"
	PermProductsDelete = "products.delete"

	PermOrdersView = "orders.view"
	PermOrdersEdit = "orders.edit"

	PermVouchersView   = "vouchers.view"
	PermVouchersCreate = "vouchers.create"
	PermVouchersEdit   = "vouchers.edit"
	PermVouchersDelete = "vouchers.delete"

	PermAdminRoles = "admin.roles"
	PermAdminUsers = "admin.users"
)
