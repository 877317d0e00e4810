package liquid

import (
	"context"
	"strconv"

	"lyquid/pkg/core"
)

// GetProducts lists every spot product. Public.
func (c *Client) GetProducts(ctx context.Context) (any, error) {
	return fetch[any](ctx, c, newRequest(core.OpGetProducts, "/products"))
}

// GetProduct returns a single product. Public.
func (c *Client) GetProduct(ctx context.Context, id int64) (any, error) {
	req, err := productRequest(id)
	if err != nil {
		return nil, err
	}
	return fetch[any](ctx, c, req)
}

// GetPerpetualProducts lists perpetual products. Public.
func (c *Client) GetPerpetualProducts(ctx context.Context) (any, error) {
	req := newRequest(core.OpGetPerpetualProducts, "/products").SetQuery("perpetual", "1")
	return fetch[any](ctx, c, req)
}

// GetOrderBook returns the price levels of product id. With full set the
// whole book is returned instead of the top 20 levels. Public.
func (c *Client) GetOrderBook(ctx context.Context, id int64, full bool) (any, error) {
	req, err := orderBookRequest(id, full)
	if err != nil {
		return nil, err
	}
	return fetch[any](ctx, c, req)
}

func productRequest(id int64) (*core.Request, error) {
	if err := validateID("product id", id); err != nil {
		return nil, err
	}
	return newRequest(core.OpGetProduct, "/products/"+strconv.FormatInt(id, 10)), nil
}

func orderBookRequest(id int64, full bool) (*core.Request, error) {
	if err := validateID("product id", id); err != nil {
		return nil, err
	}
	flag := "0"
	if full {
		flag = "1"
	}
	path := "/products/" + strconv.FormatInt(id, 10) + "/price_levels"
	return newRequest(core.OpGetOrderBook, path).SetQuery("full", flag), nil
}
