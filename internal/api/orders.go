package api

import (
	"context"

	"github.com/google/uuid"
)

// CreateOrderRequest places an order from the current cart contents.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

// CreateOrder places an order. The backend drains the cart as a side effect.
func (c *Client) CreateOrder(ctx context.Context, shippingAddress string) (*Order, error) {
	var resp struct {
		Order Order `json:"order"`
	}
	if err := c.post(ctx, "/orders", CreateOrderRequest{ShippingAddress: shippingAddress}, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// Orders lists the authenticated user's order history.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := c.get(ctx, "/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// Order fetches one order by id.
func (c *Client) Order(ctx context.Context, id uuid.UUID) (*Order, error) {
	var resp struct {
		Order Order `json:"order"`
	}
	if err := c.get(ctx, "/orders/"+id.String(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}
