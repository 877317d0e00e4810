package liquid

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"lyquid/pkg/core"
)

// GetExecutions returns recent public executions of a product. limit and
// page are only sent when positive.
func (c *Client) GetExecutions(ctx context.Context, productID int64, limit, page int) (any, error) {
	if err := validateID("product id", productID); err != nil {
		return nil, err
	}
	if limit < 0 || page < 0 {
		return nil, core.NewValidationError(fmt.Errorf("limit %d and page %d must not be negative", limit, page))
	}

	req := newRequest(core.OpGetExecutions, "/executions")
	setInt(req, "product_id", productID)
	setInt(req, "limit", int64(limit))
	setInt(req, "page", int64(page))
	return fetch[any](ctx, c, req)
}

// GetExecutionsByTimestamp returns public executions of a product made after
// since, oldest first.
func (c *Client) GetExecutionsByTimestamp(ctx context.Context, productID int64, since time.Time, limit int) (any, error) {
	if err := validateID("product id", productID); err != nil {
		return nil, err
	}
	if since.IsZero() {
		return nil, core.NewValidationError(fmt.Errorf("timestamp is required"))
	}
	if limit < 0 {
		return nil, core.NewValidationError(fmt.Errorf("limit %d must not be negative", limit))
	}

	req := newRequest(core.OpGetExecutions, "/executions")
	setInt(req, "product_id", productID)
	req.SetQuery("timestamp", strconv.FormatInt(since.Unix(), 10))
	setInt(req, "limit", int64(limit))
	return fetch[any](ctx, c, req)
}

// GetMyExecutions returns the caller's own executions on a product.
func (c *Client) GetMyExecutions(ctx context.Context, productID int64) (any, error) {
	if err := validateID("product id", productID); err != nil {
		return nil, err
	}
	req := newRequest(core.OpGetMyExecutions, "/executions/me")
	setInt(req, "product_id", productID)
	return fetch[any](ctx, c, req)
}
