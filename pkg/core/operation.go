package core

// Operation identifies a Liquid REST endpoint.
type Operation int

// Operation constants, one per endpoint the client exposes.
const (
	OpGetCryptoAccounts Operation = iota
	OpGetFiatAccounts
	OpGetAccountBalances
	OpGetAccountDetails
	OpGetTradingAccounts
	OpGetTradingAccount
	OpGetProducts
	OpGetProduct
	OpGetPerpetualProducts
	OpGetOrderBook
	OpGetLoans
	OpGetLoanBids
	OpGetTrades
	OpGetTradeLoans
	OpGetOrders
	OpGetOrder
	OpGetOrderTrades
	OpGetExecutions
	OpGetMyExecutions
	OpGetTransactions
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return [...]string{
		"GET_CRYPTO_ACCOUNTS",
		"GET_FIAT_ACCOUNTS",
		"GET_ACCOUNT_BALANCES",
		"GET_ACCOUNT_DETAILS",
		"GET_TRADING_ACCOUNTS",
		"GET_TRADING_ACCOUNT",
		"GET_PRODUCTS",
		"GET_PRODUCT",
		"GET_PERPETUAL_PRODUCTS",
		"GET_ORDER_BOOK",
		"GET_LOANS",
		"GET_LOAN_BIDS",
		"GET_TRADES",
		"GET_TRADE_LOANS",
		"GET_ORDERS",
		"GET_ORDER",
		"GET_ORDER_TRADES",
		"GET_EXECUTIONS",
		"GET_MY_EXECUTIONS",
		"GET_TRANSACTIONS",
	}[o]
}

// Signed reports whether the endpoint requires the X-Quoine-Auth token.
func (o Operation) Signed() bool {
	switch o {
	case OpGetProducts, OpGetProduct, OpGetPerpetualProducts, OpGetOrderBook, OpGetExecutions:
		return false
	default:
		return true
	}
}
