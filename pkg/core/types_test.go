package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusLive, false},
		{OrderStatusPartiallyFilled, false},
		{OrderStatusFilled, true},
		{OrderStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestTradingType_IsLeveraged(t *testing.T) {
	assert.False(t, TradingTypeSpot.IsLeveraged())
	assert.True(t, TradingTypeMargin.IsLeveraged())
	assert.True(t, TradingTypeCFD.IsLeveraged())
	assert.True(t, TradingTypePerpetual.IsLeveraged())
}

func TestLendingTransactionTypes(t *testing.T) {
	types := LendingTransactionTypes()

	assert.Equal(t, []TransactionType{"loan", "loan_interest", "loan_return"}, types)

	types[0] = "changed"
	assert.Equal(t, TransactionTypeLoan, LendingTransactionTypes()[0])
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "open", TradeStatusOpen.String())
	assert.Equal(t, "short", TradeSideShort.String())
	assert.Equal(t, "perpetual", TradingTypePerpetual.String())
	assert.Equal(t, "loan_interest", TransactionTypeLoanInterest.String())
}
