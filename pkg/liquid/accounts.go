package liquid

import (
	"context"
	"strconv"

	"lyquid/pkg/core"
)

// GetCryptoAccounts returns the caller's crypto currency accounts.
func (c *Client) GetCryptoAccounts(ctx context.Context) (any, error) {
	return fetch[any](ctx, c, newRequest(core.OpGetCryptoAccounts, "/crypto_accounts"))
}

// GetFiatAccounts returns the caller's fiat currency accounts.
func (c *Client) GetFiatAccounts(ctx context.Context) (any, error) {
	return fetch[any](ctx, c, newRequest(core.OpGetFiatAccounts, "/fiat_accounts"))
}

// GetAllAccountBalances returns the balance of every account.
func (c *Client) GetAllAccountBalances(ctx context.Context) (any, error) {
	return fetch[any](ctx, c, newRequest(core.OpGetAccountBalances, "/accounts/balance"))
}

// GetAccountDetails returns the account held in currency, e.g. "BTC".
func (c *Client) GetAccountDetails(ctx context.Context, currency string) (any, error) {
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}
	return fetch[any](ctx, c, newRequest(core.OpGetAccountDetails, "/accounts/"+currency))
}

// GetTradingAccounts returns the margin, cfd and perpetual trading accounts.
func (c *Client) GetTradingAccounts(ctx context.Context) (any, error) {
	return fetch[any](ctx, c, newRequest(core.OpGetTradingAccounts, "/trading_accounts"))
}

func (c *Client) GetTradingAccount(ctx context.Context, id int64) (any, error) {
	if err := validateID("trading account id", id); err != nil {
		return nil, err
	}
	path := "/trading_accounts/" + strconv.FormatInt(id, 10)
	return fetch[any](ctx, c, newRequest(core.OpGetTradingAccount, path))
}
