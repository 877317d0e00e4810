package liquid

import (
	"context"
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyquid/pkg/core"
)

func TestDecimal_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string", `"0.04925688"`, "0.04925688"},
		{"number", `416.23`, "416.23"},
		{"integer", `5`, "5"},
		{"null", `null`, "0"},
		{"empty_string", `""`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decimal
			require.NoError(t, sonic.Unmarshal([]byte(tt.input), &d))
			assert.Equal(t, tt.want, d.String())
		})
	}

	var d Decimal
	assert.Error(t, sonic.Unmarshal([]byte(`"abc"`), &d))
}

func TestDecimal_MarshalJSON(t *testing.T) {
	var d Decimal
	_, _, err := d.SetString("1.50")
	require.NoError(t, err)

	data, err := sonic.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1.50"`, string(data))
}

func TestPriceLevel_UnmarshalJSON(t *testing.T) {
	var ob OrderBook
	body := `{"buy_price_levels":[["416.23000","1.75000000"],["416.10000","0.25"]],` +
		`"sell_price_levels":[["416.50000","0.50000000"]],"timestamp":"1556195000.123"}`
	require.NoError(t, sonic.Unmarshal([]byte(body), &ob))

	require.Len(t, ob.Bids, 2)
	require.Len(t, ob.Asks, 1)
	assert.Equal(t, "416.23000", ob.Bids[0].Price.String())
	assert.Equal(t, "1.75000000", ob.Bids[0].Quantity.String())
	assert.Equal(t, "1556195000.123", ob.Timestamp)

	var bad PriceLevel
	assert.Error(t, sonic.Unmarshal([]byte(`["1.0"]`), &bad))
}

func TestOrderBook_SpreadAndVWAP(t *testing.T) {
	var ob OrderBook
	body := `{"buy_price_levels":[["100","1"],["99","1"]],"sell_price_levels":[["102","2"]]}`
	require.NoError(t, sonic.Unmarshal([]byte(body), &ob))

	spread, err := ob.Spread()
	require.NoError(t, err)
	assert.Equal(t, "2", spread.String())

	// (100*1 + 99*1 + 102*2) / 4
	vwap, err := ob.VWAP()
	require.NoError(t, err)
	assert.Equal(t, "100.75", vwap.Text('f'))
}

func TestOrderBook_Empty(t *testing.T) {
	var ob OrderBook

	_, ok := ob.BestBid()
	assert.False(t, ok)
	_, err := ob.Spread()
	assert.Error(t, err)
	_, err = ob.VWAP()
	assert.Error(t, err)
}

func TestClient_AccountBalances(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK,
		`[{"currency":"BTC","balance":"0.04925688"},{"currency":"USD","balance":"7.17696"}]`)

	balances, err := client.AccountBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, "BTC", balances[0].Currency)
	assert.Equal(t, "0.04925688", balances[0].Balance.String())

	claims, err := VerifyToken(fake.last(t).Auth, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "/accounts/balance", claims.Path)
}

func TestClient_OrderBookLevels(t *testing.T) {
	client, fake := newTestClient(t, http.StatusOK,
		`{"buy_price_levels":[["416.23","1.75"]],"sell_price_levels":[["416.50","0.5"]]}`)

	ob, err := client.OrderBookLevels(context.Background(), 5, false)
	require.NoError(t, err)
	assert.Equal(t, "/products/5/price_levels?full=0", fake.last(t).URI)

	ask, ok := ob.BestAsk()
	require.True(t, ok)
	assert.Equal(t, "416.50", ask.Price.String())
}

func TestClient_ProductByID(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{
		"id":"5","product_type":"CurrencyPair","code":"CASH","name":"CASH Trading",
		"market_ask":48203.05,"market_bid":"48188.15","currency":"JPY",
		"currency_pair_code":"BTCJPY","base_currency":"BTC","quoted_currency":"JPY",
		"last_traded_price":"48203.05","volume_24h":"2450.95","disabled":false}`)

	p, err := client.ProductByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "5", p.ID)
	assert.Equal(t, "BTCJPY", p.CurrencyPairCode)
	assert.Equal(t, "48203.05", p.MarketAsk.String())
	assert.Equal(t, "48188.15", p.MarketBid.String())
	assert.False(t, p.Disabled)

	_, err = client.ProductByID(context.Background(), 0)
	assert.True(t, core.IsValidationError(err))
}

func TestClient_TypedHTTPError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusUnauthorized, `{"message":"unauthorized"}`)

	balances, err := client.AccountBalances(context.Background())
	assert.Nil(t, balances)
	assert.True(t, core.IsAuthenticationError(err))
}
