package liquid

import (
	"context"
	"strconv"

	"lyquid/pkg/core"
)

// GetLoans returns the caller's loans in currency.
func (c *Client) GetLoans(ctx context.Context, currency string) (any, error) {
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}
	req := newRequest(core.OpGetLoans, "/loans").SetQuery("currency", currency)
	return fetch[any](ctx, c, req)
}

// GetLoanBids returns the caller's open loan bids in currency.
func (c *Client) GetLoanBids(ctx context.Context, currency string) (any, error) {
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}
	req := newRequest(core.OpGetLoanBids, "/loan_bids").SetQuery("currency", currency)
	return fetch[any](ctx, c, req)
}

// GetTrades lists leveraged trades. opts may be nil; values outside the
// accepted sets are rejected before any request is made.
func (c *Client) GetTrades(ctx context.Context, opts *TradesOptions) (any, error) {
	req := newRequest(core.OpGetTrades, "/trades")
	if err := opts.query(req); err != nil {
		return nil, err
	}
	return fetch[any](ctx, c, req)
}

// GetTradeLoans returns the loans funding trade id.
func (c *Client) GetTradeLoans(ctx context.Context, id int64) (any, error) {
	if err := validateID("trade id", id); err != nil {
		return nil, err
	}
	path := "/trades/" + strconv.FormatInt(id, 10) + "/loans"
	return fetch[any](ctx, c, newRequest(core.OpGetTradeLoans, path))
}
