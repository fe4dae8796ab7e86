package models

// CartItem est une ligne de panier. L'identité d'une ligne pour la fusion
// est le couple (ProductID, attributs de la variante) — voir internal/cart.
type CartItem struct {
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name"`
	Image        string   `json:"image,omitempty"`
	Price        float64  `json:"price"`
	Quantity     int      `json:"quantity"`
	Variant      *Variant `json:"variant,omitempty"`
	VariantLabel string   `json:"variant_label,omitempty"`
}

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}
