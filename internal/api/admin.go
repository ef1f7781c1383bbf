package api

import (
	"context"

	"github.com/google/uuid"
)

// ProductInput is the writable product shape for the admin back-office.
type ProductInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  uuid.UUID `json:"category_id"`
	ImageURL    string    `json:"image_url"`
	Brand       string    `json:"brand"`
	Weight      string    `json:"weight"`
}

// CategoryInput is the writable category shape.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AdminOrders lists every order in the system.
func (c *Client) AdminOrders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.get(ctx, "/admin/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// UpdateOrderStatus moves an order through its lifecycle.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	var resp struct {
		Order Order `json:"order"`
	}
	if err := c.put(ctx, "/admin/orders/"+orderID.String()+"/status", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// CreateProduct adds a catalog entry.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var resp struct {
		Product Product `json:"product"`
	}
	if err := c.post(ctx, "/admin/products", in, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// UpdateProduct replaces a catalog entry.
func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*Product, error) {
	var resp struct {
		Product Product `json:"product"`
	}
	if err := c.put(ctx, "/admin/products/"+id.String(), in, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/admin/products/"+id.String())
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	var resp struct {
		Category Category `json:"category"`
	}
	if err := c.post(ctx, "/admin/categories", in, &resp); err != nil {
		return nil, err
	}
	return &resp.Category, nil
}

// UpdateCategory replaces a category.
func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*Category, error) {
	var resp struct {
		Category Category `json:"category"`
	}
	if err := c.put(ctx, "/admin/categories/"+id.String(), in, &resp); err != nil {
		return nil, err
	}
	return &resp.Category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "/admin/categories/"+id.String())
}
