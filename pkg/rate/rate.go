// Package rate normalizes configured financing rates. A rate is stored either
// as a percentage (1.83) or as a fraction (0.0183); this package is the only
// place that conversion happens so the amortization engine always receives a
// fraction.
package rate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/financing-schedule/pkg/mathutil"
)

// Kind tags how a rate value is expressed.
type Kind string

const (
	// Percentage values are divided by 100 before use.
	Percentage Kind = "percentage"
	// Fraction values are used as-is.
	Fraction Kind = "fraction"
)

// ErrUnknownKind is returned when a value kind tag is not recognized.
var ErrUnknownKind = errors.New("unknown rate value kind")

// ParseKind interprets the value kind tag stored alongside a configured rate.
// "flat" is the tag used by the settings screens for plain fractional values.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percentage", "percent", "%":
		return Percentage, nil
	case "fraction", "flat", "decimal":
		return Fraction, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Rate is a monthly financing rate together with its unit.
type Rate struct {
	Kind  Kind    `json:"valueKind" yaml:"valueKind" mapstructure:"valueKind"`
	Value float64 `json:"value" yaml:"value" mapstructure:"value"`
}

// New builds a Rate from a raw kind tag and value.
func New(kind string, value float64) (Rate, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Rate{}, err
	}
	return Rate{Kind: k, Value: value}, nil
}

// FromPercentage returns a percentage-tagged rate.
func FromPercentage(value float64) Rate {
	return Rate{Kind: Percentage, Value: value}
}

// FromFraction returns a fraction-tagged rate.
func FromFraction(value float64) Rate {
	return Rate{Kind: Fraction, Value: value}
}

// Monthly returns the rate as a monthly fraction.
func (r Rate) Monthly() float64 {
	if r.Kind == Percentage {
		return mathutil.FromPercentage(r.Value)
	}
	return r.Value
}

// Percent returns the rate expressed as a percentage.
func (r Rate) Percent() float64 {
	return mathutil.ToPercentage(r.Monthly())
}

// Validate rejects rates that cannot be a monthly financing rate. A fraction
// of 1 or more is almost always a percentage stored with the wrong tag.
func (r Rate) Validate() error {
	switch r.Kind {
	case Percentage, Fraction:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(r.Kind))
	}
	if !mathutil.IsFinite(r.Value) {
		return fmt.Errorf("rate must be a finite number, got %v", r.Value)
	}
	if r.Value < 0 {
		return fmt.Errorf("rate must not be negative, got %v", r.Value)
	}
	if r.Monthly() >= 1 {
		return fmt.Errorf("monthly rate of %v%% is not plausible; check the value kind (%s)", r.Percent(), r.Kind)
	}
	return nil
}

func (r Rate) String() string {
	return fmt.Sprintf("%.4f%% monthly", r.Percent())
}
