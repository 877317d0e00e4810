// Package liquid is a client for the Liquid (formerly Quoine) REST API.
//
// The package includes:
//   - Client: one method per endpoint, returning the decoded JSON body
//   - Protocol: HS256 request signing and response parsing
//   - TradesOptions, OrdersOptions: validated filters for the list endpoints
//   - typed helpers (AccountBalances, OrderBookLevels, ProductByID) backed by apd decimals
//
// Private endpoints are signed with a JWT carrying {path, nonce, token_id}
// and sent in the X-Quoine-Auth header.
//
// Example usage:
//
//	config := core.DefaultConfig().WithCredentials(&core.Credentials{TokenID: id, TokenSecret: secret})
//	client, err := liquid.New(config)
//	balances, err := client.GetAllAccountBalances(ctx)
package liquid
