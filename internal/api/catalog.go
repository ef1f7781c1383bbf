package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// ProductQuery filters and paginates the catalog listing. Zero values are
// omitted, falling back to the backend's defaults (page 1, 12 per page).
type ProductQuery struct {
	Page       int
	PageSize   int
	CategoryID uuid.UUID
	Search     string
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	Total    int64     `json:"total"`
}

// Products lists the catalog.
func (c *Client) Products(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.CategoryID != uuid.Nil {
		query.Set("category_id", q.CategoryID.String())
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var page ProductPage
	if err := c.get(ctx, "/products", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Product fetches a single catalog entry.
func (c *Client) Product(ctx context.Context, id uuid.UUID) (*Product, error) {
	var resp struct {
		Product Product `json:"product"`
	}
	if err := c.get(ctx, "/products/"+id.String(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// Categories lists all product categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := c.get(ctx, "/categories", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
