package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"velours_store_front/internal/models"
)

// Auth porte l'identité de l'appelant, propagée telle quelle à l'API
type Auth struct {
	Token  string
	UserID string
}

// --- Catalogue ---

func (c *Client) Products(ctx context.Context, a Auth) ([]models.Product, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/products", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Product](raw, "produit"), nil
}

func (c *Client) Product(ctx context.Context, a Auth, id string) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/products/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) BestSelling(ctx context.Context, a Auth) ([]models.Product, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/products/best-selling", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Product](raw, "produit"), nil
}

func (c *Client) Categories(ctx context.Context, a Auth) ([]models.Category, error) {
	var cats []models.Category
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) CategoryProducts(ctx context.Context, a Auth, categoryID string) ([]models.Product, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/categories/"+url.PathEscape(categoryID)+"/products", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Product](raw, "produit"), nil
}

func (c *Client) Attributes(ctx context.Context, a Auth) ([]models.Attribute, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/attributes", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Attribute](raw, "attribut"), nil
}

func (c *Client) AttributeValues(ctx context.Context, a Auth) ([]models.AttributeValue, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/attribute-values", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.AttributeValue](raw, "valeur d'attribut"), nil
}

// --- Produits (admin, proxy) ---

func (c *Client) CreateProduct(ctx context.Context, a Auth, p models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, a.Token, a.UserID, http.MethodPost, "/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, a Auth, id string, p models.Product) error {
	return c.do(ctx, a.Token, a.UserID, http.MethodPut, "/products/"+url.PathEscape(id), p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, a Auth, id string) error {
	return c.do(ctx, a.Token, a.UserID, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateVariant(ctx context.Context, a Auth, productID string, v models.Variant) (*models.Variant, error) {
	var created models.Variant
	if err := c.do(ctx, a.Token, a.UserID, http.MethodPost, "/products/"+url.PathEscape(productID)+"/variants", v, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// --- Bons de réduction ---

func (c *Client) Vouchers(ctx context.Context, a Auth) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/vouchers", nil, &vouchers); err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (c *Client) Voucher(ctx context.Context, a Auth, code string) (*models.Voucher, error) {
	var v models.Voucher
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/vouchers/"+url.PathEscape(code), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) CreateVoucher(ctx context.Context, a Auth, v models.Voucher) (*models.Voucher, error) {
	var created models.Voucher
	if err := c.do(ctx, a.Token, a.UserID, http.MethodPost, "/vouchers", v, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateVoucher(ctx context.Context, a Auth, id string, v models.Voucher) error {
	return c.do(ctx, a.Token, a.UserID, http.MethodPut, "/vouchers/"+url.PathEscape(id), v, nil)
}

func (c *Client) DeleteVoucher(ctx context.Context, a Auth, id string) error {
	return c.do(ctx, a.Token, a.UserID, http.MethodDelete, "/vouchers/"+url.PathEscape(id), nil, nil)
}

// --- Commandes ---

func (c *Client) CreateOrder(ctx context.Context, a Auth, o models.Order) (*models.Order, error) {
	var created models.Order
	if err := c.do(ctx, a.Token, a.UserID, http.MethodPost, "/orders", o, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) MyOrders(ctx context.Context, a Auth) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/orders/me", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, a Auth, id string) (*models.Order, error) {
	var o models.Order
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// --- Workflow livreur ---

func (c *Client) ShipperOrders(ctx context.Context, a Auth) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/shipper/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ShipperAccept(ctx context.Context, a Auth, orderID string) error {
	return c.do(ctx, a.Token, a.UserID, http.MethodPost, "/shipper/orders/"+url.PathEscape(orderID)+"/accept", nil, nil)
}

func (c *Client) ShipperUpdateStatus(ctx context.Context, a Auth, orderID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, a.Token, a.UserID, http.MethodPut, "/shipper/orders/"+url.PathEscape(orderID)+"/status", body, nil)
}

// --- Utilisateurs, rôles, permissions ---

func (c *Client) Me(ctx context.Context, a Auth) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Users(ctx context.Context, a Auth) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) Roles(ctx context.Context, a Auth) ([]models.Role, error) {
	var roles []models.Role
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) CreateRole(ctx context.Context, a Auth, r models.Role) (*models.Role, error) {
	var created models.Role
	if err := c.do(ctx, a.Token, a.UserID, http.MethodPost, "/roles", r, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateRole(ctx context.Context, a Auth, id string, r models.Role) error {
	return c.do(ctx, a.Token, a.UserID, http.MethodPut, "/roles/"+url.PathEscape(id), r, nil)
}

func (c *Client) DeleteRole(ctx context.Context, a Auth, id string) error {
	return c.do(ctx, a.Token, a.UserID, http.MethodDelete, "/roles/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Permissions(ctx context.Context, a Auth) ([]models.Permission, error) {
	var perms []models.Permission
	if err := c.do(ctx, a.Token, a.UserID, http.MethodGet, "/permissions", nil, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (c *Client) AssignRole(ctx context.Context, a Auth, userID, roleID string) error {
	body := map[string]string{"user_id": userID, "role_id": roleID}
	return c.do(ctx, a.Token, a.UserID, http.MethodPost, "/roles/assign", body, nil)
}
