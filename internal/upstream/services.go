package upstream

import (
	"context"

	"github.com/pointsolution/docbooking/internal/domain"
)

func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var out struct {
		Services []domain.Service `json:"services"`
	}
	if err := c.get(ctx, "/services", nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

func (c *Client) ServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	var out struct {
		Service domain.Service `json:"service"`
	}
	if err := c.get(ctx, "/services/id/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Service, nil
}

func (c *Client) ServicesByCategory(ctx context.Context, category string) ([]domain.Service, error) {
	var out struct {
		Services []domain.Service `json:"services"`
	}
	if err := c.get(ctx, "/services/category/"+category, nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out struct {
		Categories []string `json:"categories"`
	}
	if err := c.get(ctx, "/services/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}
