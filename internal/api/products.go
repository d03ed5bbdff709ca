package api

import (
	"context"
	"fmt"
	"net/url"

	"shoplist/internal/model"
)

// ProductAPI wraps the read-only catalog endpoints.
type ProductAPI struct {
	c *Client
}

func NewProductAPI(c *Client) *ProductAPI {
	return &ProductAPI{c: c}
}

func (p *ProductAPI) List(ctx context.Context) ([]model.Product, error) {
	var res []model.Product
	if err := p.c.get(ctx, epProducts, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *ProductAPI) Get(ctx context.Context, id int64) (*model.Product, error) {
	var res model.Product
	if err := p.c.get(ctx, fmt.Sprintf("%s/%d", epProducts, id), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (p *ProductAPI) Search(ctx context.Context, query string) ([]model.Product, error) {
	var res []model.Product
	path := epProducts + "/search?query=" + url.QueryEscape(query)
	if err := p.c.get(ctx, path, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *ProductAPI) ByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	var res []model.Product
	if err := p.c.get(ctx, fmt.Sprintf("%s/category/%d", epProducts, categoryID), &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *ProductAPI) Categories(ctx context.Context) ([]model.Category, error) {
	var res []model.Category
	if err := p.c.get(ctx, epCategories, &res); err != nil {
		return nil, err
	}
	return res, nil
}
