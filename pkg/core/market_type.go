package core

// TradingType is the market a Liquid order or trade belongs to.
type TradingType string

// Trading type constants. Trades only exist for leveraged types, so spot is
// accepted when listing orders but not when listing trades.
const (
	TradingTypeSpot      TradingType = "spot"
	TradingTypeMargin    TradingType = "margin"
	TradingTypeCFD       TradingType = "cfd"
	TradingTypePerpetual TradingType = "perpetual"
)

// String returns the wire value of the trading type.
func (t TradingType) String() string {
	return string(t)
}

// IsLeveraged returns true for margin, cfd and perpetual markets.
func (t TradingType) IsLeveraged() bool {
	return t == TradingTypeMargin || t == TradingTypeCFD || t == TradingTypePerpetual
}
