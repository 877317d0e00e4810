package liquid

import (
	"context"
	"strconv"

	"lyquid/pkg/core"
)

// GetOrders lists the caller's orders. opts may be nil; values outside the
// accepted sets are rejected before any request is made.
func (c *Client) GetOrders(ctx context.Context, opts *OrdersOptions) (any, error) {
	req := newRequest(core.OpGetOrders, "/orders")
	if err := opts.query(req); err != nil {
		return nil, err
	}
	return fetch[any](ctx, c, req)
}

func (c *Client) GetOrder(ctx context.Context, id int64) (any, error) {
	if err := validateID("order id", id); err != nil {
		return nil, err
	}
	return fetch[any](ctx, c, newRequest(core.OpGetOrder, "/orders/"+strconv.FormatInt(id, 10)))
}

// GetOrderTrades returns the trades opened or closed by order id.
func (c *Client) GetOrderTrades(ctx context.Context, id int64) (any, error) {
	if err := validateID("order id", id); err != nil {
		return nil, err
	}
	path := "/orders/" + strconv.FormatInt(id, 10) + "/trades"
	return fetch[any](ctx, c, newRequest(core.OpGetOrderTrades, path))
}
