package models

import (
	"encoding/json"
	"errors"
)

// AttributePair lie un attribut à une de ses valeurs (ex: Couleur → Rouge)
type AttributePair struct {
	AttributeID string `json:"attribute_id"`
	ValueID     string `json:"value_id"`
}

type Attribute struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

type AttributeValue struct {
	ID          string `json:"_id"`
	AttributeID string `json:"attribute_id"`
	Value       string `json:"value"`
}

// Variant est une déclinaison achetable d'un produit, avec son propre
// prix, stock et image
type Variant struct {
	ID         string          `json:"_id"`
	ProductID  string          `json:"product_id"`
	Price      float64         `json:"price"`
	Stock      int             `json:"stock_quantity"`
	Image      string          `json:"image,omitempty"`
	Attributes []AttributePair `json:"attributes"`
}

type Product struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock_quantity"`
	Image       string    `json:"image,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	Sold        int       `json:"sold,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
}

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

var ErrMissingID = errors.New("champ _id manquant dans la réponse API")

// L'API distante est incohérente sur le nom du champ stock : certains
// endpoints renvoient `stock_quantity`, d'autres `quantity`. On normalise
// tout vers Stock à la frontière (`stock_quantity` prioritaire).
func (v *Variant) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         string          `json:"_id"`
		ProductID  string          `json:"product_id"`
		Price      float64         `json:"price"`
		Stock      *int            `json:"stock_quantity"`
		Quantity   *int            `json:"quantity"`
		Image      string          `json:"image"`
		Attributes []AttributePair `json:"attributes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		return ErrMissingID
	}
	v.ID = raw.ID
	v.ProductID = raw.ProductID
	v.Price = raw.Price
	v.Image = raw.Image
	v.Attributes = raw.Attributes
	switch {
	case raw.Stock != nil:
		v.Stock = *raw.Stock
	case raw.Quantity != nil:
		v.Stock = *raw.Quantity
	default:
		v.Stock = 0
	}
	return nil
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string    `json:"_id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Price       float64   `json:"price"`
		Stock       *int      `json:"stock_quantity"`
		Quantity    *int      `json:"quantity"`
		Image       string    `json:"image"`
		CategoryID  string    `json:"category_id"`
		Sold        int       `json:"sold"`
		Variants    []Variant `json:"variants"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		return ErrMissingID
	}
	p.ID = raw.ID
	p.Name = raw.Name
	p.Description = raw.Description
	p.Price = raw.Price
	p.Image = raw.Image
	p.CategoryID = raw.CategoryID
	p.Sold = raw.Sold
	p.Variants = raw.Variants
	switch {
	case raw.Stock != nil:
		p.Stock = *raw.Stock
	case raw.Quantity != nil:
		p.Stock = *raw.Quantity
	default:
		p.Stock = 0
	}
	return nil
}

// HasVariants indique si le produit se vend par déclinaisons
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// AvailableStock renvoie le stock pertinent : celui de la variante si le
// produit en déclare, sinon le stock du produit lui-même
func (p *Product) AvailableStock(v *Variant) int {
	if v != nil {
		return v.Stock
	}
	return p.Stock
}
