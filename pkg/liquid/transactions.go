package liquid

import (
	"context"
	"strings"

	"lyquid/pkg/core"
)

// GetTransactions returns the caller's transactions in currency, optionally
// restricted to types. Types are passed through unchecked.
func (c *Client) GetTransactions(ctx context.Context, currency string, types ...core.TransactionType) (any, error) {
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}

	req := newRequest(core.OpGetTransactions, "/transactions").SetQuery("currency", currency)
	if len(types) > 0 {
		parts := make([]string, len(types))
		for i, t := range types {
			parts[i] = t.String()
		}
		req.SetQuery("transaction_type", strings.Join(parts, ","))
	}
	return fetch[any](ctx, c, req)
}

// GetLendingTransactions returns lending transactions in currency. Only
// loan, loan_interest and loan_return are accepted; with no types all three
// are requested.
func (c *Client) GetLendingTransactions(ctx context.Context, currency string, types ...core.TransactionType) (any, error) {
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}
	value, err := lendingTypes(types)
	if err != nil {
		return nil, err
	}

	req := newRequest(core.OpGetTransactions, "/transactions").
		SetQuery("currency", currency).
		SetQuery("transaction_type", value)
	return fetch[any](ctx, c, req)
}
