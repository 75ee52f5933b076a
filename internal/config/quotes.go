package config

import (
	"fmt"

	"github.com/iwvelando/financing-schedule/pkg/mathutil"
	"github.com/iwvelando/financing-schedule/pkg/principal"
	"github.com/iwvelando/financing-schedule/pkg/rate"
	"github.com/iwvelando/financing-schedule/pkg/validation"
)

// Quote is a financing quote for one vehicle and client.
type Quote struct {
	Name             string               `yaml:"name"`
	Client           string               `yaml:"client,omitempty"`
	StartDate        string               `yaml:"startDate,omitempty"`
	RateKey          string               `yaml:"rateKey,omitempty"`
	Rate             *InlineRate          `yaml:"rate,omitempty"`
	TermMonths       int                  `yaml:"termMonths"`
	MonthlyInsurance float64              `yaml:"monthlyInsurance,omitempty"`
	Components       principal.Components `yaml:"components"`
}

// InlineRate is a rate given directly on a quote instead of by lookup key.
type InlineRate struct {
	ValueKind string  `yaml:"valueKind" json:"valueKind"`
	Value     float64 `yaml:"value" json:"value"`
}

// ToRate converts the inline rate into a normalized rate.
func (r InlineRate) ToRate() (rate.Rate, error) {
	return rate.New(r.ValueKind, r.Value)
}

// Validate checks the quote fields that would otherwise surface as an empty schedule.
func (q Quote) Validate() error {
	if q.Rate == nil && q.RateKey == "" {
		return fmt.Errorf("quote %q has neither rateKey nor rate", q.Name)
	}
	if q.Rate != nil && q.RateKey != "" {
		return fmt.Errorf("quote %q sets both rateKey and rate", q.Name)
	}
	if err := validation.ValidateTermMonths(q.TermMonths); err != nil {
		return fmt.Errorf("quote %q: %w", q.Name, err)
	}
	if !q.Components.Finite() || !mathutil.IsFinite(q.MonthlyInsurance) {
		return fmt.Errorf("quote %q has a non-numeric amount", q.Name)
	}
	return nil
}
