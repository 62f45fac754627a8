package client

import (
	"context"
	"net/http"
	"net/url"

	"productconsole/models"
)

// ListProducts fetches every product.
func (c *Client) ListProducts(ctx context.Context) ([]models.ProductResponse, error) {
	var products []models.ProductResponse
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.ProductResponse{}
	}
	return products, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id string) (models.ProductResponse, error) {
	var product models.ProductResponse
	err := c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product)
	return product, err
}

// CreateProduct creates a product and returns the backend's copy.
func (c *Client) CreateProduct(ctx context.Context, req models.ProductCreateRequest) (models.ProductResponse, error) {
	var product models.ProductResponse
	err := c.doJSON(ctx, http.MethodPost, "/products", req, &product)
	return product, err
}

// UpdateProduct applies the non-nil fields of req to product id.
func (c *Client) UpdateProduct(ctx context.Context, id string, req models.ProductUpdateRequest) (models.ProductResponse, error) {
	var product models.ProductResponse
	err := c.doJSON(ctx, http.MethodPut, "/products/"+url.PathEscape(id), req, &product)
	return product, err
}

// DeleteProduct deletes product id. Failures with a masked status are reported as success.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	err := c.doJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
	return c.maskDelete("product", id, err)
}
