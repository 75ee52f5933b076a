package rate

import (
	"errors"
	"math"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input     string
		expected  Kind
		expectErr bool
	}{
		{"percentage", Percentage, false},
		{"Percent", Percentage, false},
		{" % ", Percentage, false},
		{"fraction", Fraction, false},
		{"flat", Fraction, false},
		{"DECIMAL", Fraction, false},
		{"", "", true},
		{"basis-points", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseKind(tt.input)
			if tt.expectErr {
				if !errors.Is(err, ErrUnknownKind) {
					t.Errorf("ParseKind(%q) error = %v, expected ErrUnknownKind", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) unexpected error = %v", tt.input, err)
			}
			if kind != tt.expected {
				t.Errorf("ParseKind(%q) = %q, expected %q", tt.input, kind, tt.expected)
			}
		})
	}
}

func TestMonthly(t *testing.T) {
	tests := []struct {
		name     string
		rate     Rate
		expected float64
	}{
		{"Percentage is divided by 100", FromPercentage(1.83), 0.0183},
		{"Fraction is used as-is", FromFraction(0.0183), 0.0183},
		{"Zero percentage", FromPercentage(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.rate.Monthly(); math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("Monthly() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	r, err := New("flat", 0.0183)
	if err != nil {
		t.Fatalf("New() unexpected error = %v", err)
	}
	if r.Kind != Fraction || r.Value != 0.0183 {
		t.Errorf("New() = %+v, expected fraction 0.0183", r)
	}

	if _, err := New("weird", 1); err == nil {
		t.Errorf("New() expected error for unknown kind")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		rate      Rate
		expectErr bool
	}{
		{"Percentage", FromPercentage(1.83), false},
		{"Fraction", FromFraction(0.0183), false},
		{"Zero", FromFraction(0), false},
		{"Percentage tagged as fraction", FromFraction(1.83), true},
		{"Negative", FromPercentage(-1), true},
		{"Hundred percent monthly", FromPercentage(100), true},
		{"Missing kind", Rate{Value: 0.02}, true},
		{"NaN", FromFraction(math.NaN()), true},
		{"Infinite", FromPercentage(math.Inf(1)), true},
		{"Below float resolution", FromFraction(1e-17), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rate.Validate()
			if tt.expectErr && err == nil {
				t.Errorf("Validate() expected error for %+v", tt.rate)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestString(t *testing.T) {
	if s := FromFraction(0.0183).String(); s != "1.8300% monthly" {
		t.Errorf("String() = %q", s)
	}
}
