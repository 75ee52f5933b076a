// Package principal composes the amount to finance from the additive cost
// components of a quote.
package principal

import (
	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/iwvelando/financing-schedule/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Components holds the cost fields of a vehicle quote.
type Components struct {
	Price        float64 `json:"price" yaml:"price" mapstructure:"price"`
	Registration float64 `json:"registration" yaml:"registration" mapstructure:"registration"`
	Accessories  float64 `json:"accessories" yaml:"accessories" mapstructure:"accessories"`
	Warranty     float64 `json:"warranty" yaml:"warranty" mapstructure:"warranty"`
	DownPayment  float64 `json:"downPayment" yaml:"downPayment" mapstructure:"downPayment"`
}

// Base returns the sum of the cost components before the down payment.
func (c Components) Base() float64 {
	return c.base().Round(constants.CurrencyPlaces).InexactFloat64()
}

// Principal returns the amount to finance: the cost components minus the
// down payment, never below zero. Non-finite components finance nothing.
func (c Components) Principal() float64 {
	if !c.Finite() {
		return 0
	}
	amount := c.base().Sub(decimal.NewFromFloat(c.DownPayment))
	if amount.IsNegative() {
		return 0
	}
	return amount.Round(constants.CurrencyPlaces).InexactFloat64()
}

// Empty reports whether no cost component has been filled in.
func (c Components) Empty() bool {
	return c.base().IsZero()
}

// Finite reports whether every component is a finite number.
func (c Components) Finite() bool {
	for _, v := range []float64{c.Price, c.Registration, c.Accessories, c.Warranty, c.DownPayment} {
		if !mathutil.IsFinite(v) {
			return false
		}
	}
	return true
}

// base is zero when any component is NaN or infinite; decimal cannot hold them.
func (c Components) base() decimal.Decimal {
	if !c.Finite() {
		return decimal.Zero
	}
	return decimal.Sum(
		decimal.NewFromFloat(c.Price),
		decimal.NewFromFloat(c.Registration),
		decimal.NewFromFloat(c.Accessories),
		decimal.NewFromFloat(c.Warranty),
	)
}
