package model

import "github.com/shopspring/decimal"

// Money is a decimal sent to clients with exactly two fractional digits, matching
// numeric(12,2): 45 is written as "45.00".
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

// NullMoney is the nullable form of Money; an invalid value is written as null.
type NullMoney struct {
	decimal.NullDecimal
}

func NewNullMoney(d decimal.NullDecimal) NullMoney {
	return NullMoney{d}
}

func (m NullMoney) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return NewMoney(m.Decimal).MarshalJSON()
}
