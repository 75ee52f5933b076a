package validation

import (
	"fmt"

	"github.com/iwvelando/financing-schedule/pkg/datetime"
	"github.com/iwvelando/financing-schedule/pkg/rate"
)

// ConfigValidator collects configuration warnings that do not stop a run but
// would otherwise surface as silently empty or implausible schedules.
type ConfigValidator struct {
	Rates         []RateConfig
	Quotes        []QuoteConfig
	KnownRateKeys map[string]struct{}
	// RemoteRates is set when keys may resolve outside the configuration.
	RemoteRates bool
}

type RateConfig struct {
	Key       string
	ValueKind string
	Value     float64
}

type QuoteConfig struct {
	Name          string
	StartDate     string
	TermMonths    int
	RateKey       string
	HasInlineRate bool
	Principal     float64
	NoComponents  bool
}

// ValidateRate returns a warning when a configured rate is unusable or
// suspicious, e.g. a percentage stored with a fraction tag.
func ValidateRate(key, valueKind string, value float64) string {
	r, err := rate.New(valueKind, value)
	if err != nil {
		return fmt.Sprintf("Rate '%s': %v", key, err)
	}
	if err := r.Validate(); err != nil {
		return fmt.Sprintf("Rate '%s': %v", key, err)
	}
	return ""
}

// ValidateQuote returns the warnings for a single quote.
func ValidateQuote(quote QuoteConfig, knownRateKeys map[string]struct{}, remoteRates bool) []string {
	var warnings []string

	if quote.TermMonths <= 0 {
		warnings = append(warnings, fmt.Sprintf("Quote '%s' has a term of %d months - schedule will be empty",
			quote.Name, quote.TermMonths))
	} else if err := ValidateTermMonths(quote.TermMonths); err != nil {
		warnings = append(warnings, fmt.Sprintf("Quote '%s' %v - quote will be rejected", quote.Name, err))
	}
	switch {
	case quote.NoComponents:
		warnings = append(warnings, fmt.Sprintf("Quote '%s' has no cost components - schedule will be empty",
			quote.Name))
	case quote.Principal <= 0:
		warnings = append(warnings, fmt.Sprintf("Quote '%s' has nothing to finance - schedule will be empty",
			quote.Name))
	}
	if quote.StartDate != "" {
		if err := datetime.ValidateDate(quote.StartDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("Quote '%s' start date %q is not in YYYY-MM format",
				quote.Name, quote.StartDate))
		}
	}

	switch {
	case quote.RateKey == "" && !quote.HasInlineRate:
		warnings = append(warnings, fmt.Sprintf("Quote '%s' has no rate", quote.Name))
	case quote.RateKey != "" && quote.HasInlineRate:
		warnings = append(warnings, fmt.Sprintf("Quote '%s' sets both rateKey and rate", quote.Name))
	case quote.RateKey != "" && !remoteRates:
		if _, ok := knownRateKeys[quote.RateKey]; !ok {
			warnings = append(warnings, fmt.Sprintf("Quote '%s' references unknown rate '%s'",
				quote.Name, quote.RateKey))
		}
	}

	return warnings
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	for _, r := range cv.Rates {
		if warning := ValidateRate(r.Key, r.ValueKind, r.Value); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	for _, quote := range cv.Quotes {
		warnings = append(warnings, ValidateQuote(quote, cv.KnownRateKeys, cv.RemoteRates)...)
	}

	return warnings
}
