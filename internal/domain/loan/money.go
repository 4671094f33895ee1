package loan

import "github.com/shopspring/decimal"

// Money is a currency value that always renders with two decimal places.
// Arithmetic stays on the embedded decimal.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}
