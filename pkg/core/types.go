package core

// OrderStatus is the state filter accepted by the orders endpoint.
type OrderStatus string

// Order status constants.
const (
	OrderStatusLive            OrderStatus = "live"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

// String returns the wire value of the order status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the order can no longer change.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFilled || s == OrderStatusCancelled
}

// TradeStatus is the state filter accepted by the trades endpoint.
type TradeStatus string

// Trade status constants.
const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// String returns the wire value of the trade status.
func (s TradeStatus) String() string {
	return string(s)
}

// TradeSide is the direction of a leveraged position.
type TradeSide string

// Trade side constants.
const (
	TradeSideLong  TradeSide = "long"
	TradeSideShort TradeSide = "short"
)

// String returns the wire value of the trade side.
func (s TradeSide) String() string {
	return string(s)
}

// TransactionType filters the transactions endpoint.
type TransactionType string

// Lending related transaction types.
const (
	TransactionTypeLoan         TransactionType = "loan"
	TransactionTypeLoanInterest TransactionType = "loan_interest"
	TransactionTypeLoanReturn   TransactionType = "loan_return"
)

// String returns the wire value of the transaction type.
func (t TransactionType) String() string {
	return string(t)
}

// LendingTransactionTypes lists the transaction types accepted when querying
// lending history, in the order they are sent by default.
func LendingTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeLoan,
		TransactionTypeLoanInterest,
		TransactionTypeLoanReturn,
	}
}
