package liquid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"lyquid/pkg/core"
)

var validate = validator.New()

// TradesOptions filters GetTrades. Zero values are omitted from the query.
type TradesOptions struct {
	FundingCurrency string           `validate:"omitempty,alphanum"`
	Status          core.TradeStatus `validate:"omitempty,oneof=open closed"`
	TradingType     core.TradingType `validate:"omitempty,oneof=margin cfd perpetual"`
	Side            core.TradeSide   `validate:"omitempty,oneof=long short"`
	ProductID       int64            `validate:"min=0"`
	Limit           int              `validate:"min=0"`
	Page            int              `validate:"min=0"`
}

func (o *TradesOptions) query(req *core.Request) error {
	if o == nil {
		return nil
	}
	if err := validate.Struct(o); err != nil {
		return core.NewValidationError(err)
	}

	setString(req, "funding_currency", o.FundingCurrency)
	setString(req, "status", o.Status.String())
	setString(req, "trading_type", o.TradingType.String())
	setString(req, "side", o.Side.String())
	setInt(req, "product_id", o.ProductID)
	setInt(req, "limit", int64(o.Limit))
	setInt(req, "page", int64(o.Page))
	return nil
}

// OrdersOptions filters GetOrders. Zero values are omitted from the query.
type OrdersOptions struct {
	FundingCurrency string           `validate:"omitempty,alphanum"`
	ProductID       int64            `validate:"min=0"`
	Status          core.OrderStatus `validate:"omitempty,oneof=live filled partially_filled cancelled"`
	TradingType     core.TradingType `validate:"omitempty,oneof=spot margin cfd perpetual"`
	WithDetails     bool
	Limit           int `validate:"min=0"`
	Page            int `validate:"min=0"`
}

func (o *OrdersOptions) query(req *core.Request) error {
	if o == nil {
		return nil
	}
	if err := validate.Struct(o); err != nil {
		return core.NewValidationError(err)
	}

	setString(req, "funding_currency", o.FundingCurrency)
	setInt(req, "product_id", o.ProductID)
	setString(req, "status", o.Status.String())
	setString(req, "trading_type", o.TradingType.String())
	if o.WithDetails {
		req.SetQuery("with_details", "1")
	}
	setInt(req, "limit", int64(o.Limit))
	setInt(req, "page", int64(o.Page))
	return nil
}

// lendingTypes checks types against the lending allow-list and renders the
// transaction_type value. No types selects the whole list.
func lendingTypes(types []core.TransactionType) (string, error) {
	allowed := core.LendingTransactionTypes()
	if len(types) == 0 {
		types = allowed
	}

	parts := make([]string, 0, len(types))
	for _, t := range types {
		if !slices.Contains(allowed, t) {
			return "", core.NewValidationError(fmt.Errorf("transaction_type %q is not a lending transaction type", t))
		}
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ","), nil
}

func validateCurrency(currency string) error {
	if err := validate.Var(currency, "required,alphanum"); err != nil {
		return core.NewValidationError(fmt.Errorf("currency %q: %w", currency, err))
	}
	return nil
}

func validateID(name string, id int64) error {
	if err := validate.Var(id, "gt=0"); err != nil {
		return core.NewValidationError(fmt.Errorf("%s %d: %w", name, id, err))
	}
	return nil
}

func setString(req *core.Request, key, value string) {
	if value != "" {
		req.SetQuery(key, value)
	}
}

func setInt(req *core.Request, key string, value int64) {
	if value > 0 {
		req.SetQuery(key, strconv.FormatInt(value, 10))
	}
}
