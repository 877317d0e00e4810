package liquid

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"

	"lyquid/pkg/core"
)

// decimalContext is used for derived values. apd.BaseContext has no
// precision and cannot divide.
var decimalContext = apd.BaseContext.WithPrecision(34)

// Decimal is an exact decimal that decodes from a JSON string or number.
// Liquid sends most amounts as strings.
type Decimal struct {
	apd.Decimal
}

// UnmarshalJSON accepts "1.5", 1.5 and null.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		d.SetInt64(0)
		return nil
	}

	s := string(data)
	if len(data) >= 2 && data[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("decimal: %w", err)
		}
		s = unquoted
	}
	if s == "" {
		d.SetInt64(0)
		return nil
	}

	if _, _, err := d.SetString(s); err != nil {
		return fmt.Errorf("decimal %q: %w", s, err)
	}
	return nil
}

// MarshalJSON encodes the decimal as a JSON string, matching Liquid.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Decimal.String())), nil
}

// AccountBalance is one entry of /accounts/balance.
type AccountBalance struct {
	Currency string  `json:"currency"`
	Balance  Decimal `json:"balance"`
}

// PriceLevel is a [price, quantity] pair of an order book side.
type PriceLevel struct {
	Price    Decimal
	Quantity Decimal
}

func (l *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair []Decimal
	if err := sonic.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("price level: %w", err)
	}
	if len(pair) < 2 {
		return fmt.Errorf("price level: want [price, quantity], got %d values", len(pair))
	}
	l.Price.Set(&pair[0].Decimal)
	l.Quantity.Set(&pair[1].Decimal)
	return nil
}

func (l PriceLevel) MarshalJSON() ([]byte, error) {
	return sonic.Marshal([2]Decimal{l.Price, l.Quantity})
}

// OrderBook is the response of /products/{id}/price_levels. Bids are sorted
// best first, as are asks.
type OrderBook struct {
	Bids      []PriceLevel `json:"buy_price_levels"`
	Asks      []PriceLevel `json:"sell_price_levels"`
	Timestamp string       `json:"timestamp,omitempty"`
}

// BestBid returns the highest bid, or false when there are no bids.
func (ob *OrderBook) BestBid() (PriceLevel, bool) {
	if len(ob.Bids) == 0 {
		return PriceLevel{}, false
	}
	return ob.Bids[0], true
}

// BestAsk returns the lowest ask, or false when there are no asks.
func (ob *OrderBook) BestAsk() (PriceLevel, bool) {
	if len(ob.Asks) == 0 {
		return PriceLevel{}, false
	}
	return ob.Asks[0], true
}

// Spread returns best ask minus best bid.
func (ob *OrderBook) Spread() (*apd.Decimal, error) {
	bid, okBid := ob.BestBid()
	ask, okAsk := ob.BestAsk()
	if !okBid || !okAsk {
		return nil, fmt.Errorf("spread needs both sides of the book")
	}

	var spread apd.Decimal
	if _, err := decimalContext.Sub(&spread, &ask.Price.Decimal, &bid.Price.Decimal); err != nil {
		return nil, fmt.Errorf("calculate spread: %w", err)
	}
	return &spread, nil
}

// VWAP returns the volume weighted average price over every level on both
// sides of the book.
func (ob *OrderBook) VWAP() (*apd.Decimal, error) {
	var totalValue, totalVolume apd.Decimal

	for _, side := range [][]PriceLevel{ob.Bids, ob.Asks} {
		for _, level := range side {
			var value apd.Decimal
			if _, err := decimalContext.Mul(&value, &level.Price.Decimal, &level.Quantity.Decimal); err != nil {
				return nil, fmt.Errorf("calculate level value: %w", err)
			}
			if _, err := decimalContext.Add(&totalValue, &totalValue, &value); err != nil {
				return nil, fmt.Errorf("sum value: %w", err)
			}
			if _, err := decimalContext.Add(&totalVolume, &totalVolume, &level.Quantity.Decimal); err != nil {
				return nil, fmt.Errorf("sum volume: %w", err)
			}
		}
	}

	if totalVolume.IsZero() {
		return nil, fmt.Errorf("order book has no volume")
	}

	var vwap apd.Decimal
	if _, err := decimalContext.Quo(&vwap, &totalValue, &totalVolume); err != nil {
		return nil, fmt.Errorf("calculate vwap: %w", err)
	}
	return &vwap, nil
}

// Product is a tradable pair as returned by /products/{id}.
type Product struct {
	ID               string  `json:"id"`
	ProductType      string  `json:"product_type"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	MarketAsk        Decimal `json:"market_ask"`
	MarketBid        Decimal `json:"market_bid"`
	Currency         string  `json:"currency"`
	CurrencyPairCode string  `json:"currency_pair_code"`
	BaseCurrency     string  `json:"base_currency"`
	QuotedCurrency   string  `json:"quoted_currency"`
	LastTradedPrice  Decimal `json:"last_traded_price"`
	Volume24h        Decimal `json:"volume_24h"`
	Disabled         bool    `json:"disabled"`
}

// AccountBalances is GetAllAccountBalances decoded into typed balances.
func (c *Client) AccountBalances(ctx context.Context) ([]AccountBalance, error) {
	return fetch[[]AccountBalance](ctx, c, newRequest(core.OpGetAccountBalances, "/accounts/balance"))
}

// OrderBookLevels is GetOrderBook decoded into typed price levels.
func (c *Client) OrderBookLevels(ctx context.Context, id int64, full bool) (*OrderBook, error) {
	req, err := orderBookRequest(id, full)
	if err != nil {
		return nil, err
	}
	ob, err := fetch[OrderBook](ctx, c, req)
	if err != nil {
		return nil, err
	}
	return &ob, nil
}

// ProductByID is GetProduct decoded into a Product.
func (c *Client) ProductByID(ctx context.Context, id int64) (*Product, error) {
	req, err := productRequest(id)
	if err != nil {
		return nil, err
	}
	p, err := fetch[Product](ctx, c, req)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
