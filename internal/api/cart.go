package api

import (
	"context"

	"github.com/google/uuid"
)

// CartContents is the full cart as the backend reports it. Total is
// server-computed and informational; the cart store derives its own from the
// line snapshots.
type CartContents struct {
	CartItems []CartItem `json:"cart_items"`
	Total     float64    `json:"total"`
}

// Cart fetches the authenticated user's full cart.
func (c *Client) Cart(ctx context.Context) (*CartContents, error) {
	var contents CartContents
	if err := c.get(ctx, "/cart", nil, &contents); err != nil {
		return nil, err
	}
	return &contents, nil
}

// AddCartItem creates (or merges into) a cart line. The response body is not
// authoritative; callers refetch the cart afterward.
func (c *Client) AddCartItem(ctx context.Context, productID uuid.UUID, quantity int) error {
	body := struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}{ProductID: productID.String(), Quantity: quantity}
	return c.post(ctx, "/cart", body, nil)
}

// UpdateCartItem sets a line's quantity.
func (c *Client) UpdateCartItem(ctx context.Context, lineID uuid.UUID, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}
	return c.put(ctx, "/cart/"+lineID.String(), body, nil)
}

// RemoveCartItem deletes one line.
func (c *Client) RemoveCartItem(ctx context.Context, lineID uuid.UUID) error {
	return c.delete(ctx, "/cart/"+lineID.String())
}

// ClearCart deletes the entire cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.delete(ctx, "/cart")
}
