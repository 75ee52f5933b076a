// Package ratesource looks up configured financing rates by key. Each source
// returns the rate together with its value kind so callers normalize it
// through the rate package before building a schedule.
package ratesource

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iwvelando/financing-schedule/pkg/rate"
)

// ErrNotFound is returned when no rate is configured under a key.
var ErrNotFound = errors.New("financing rate not found")

// ErrUnavailable is returned when a remote source cannot be reached.
var ErrUnavailable = errors.New("financing rate source unavailable")

// Field names of a stored rate.
const (
	FieldValueKind = "valueKind"
	FieldValue     = "value"
)

// Source resolves a financing rate by key.
type Source interface {
	Lookup(ctx context.Context, key string) (rate.Rate, error)
}

// Decode parses the stored field map of a rate.
func Decode(fields map[string]string) (rate.Rate, error) {
	kind, ok := fields[FieldValueKind]
	if !ok {
		return rate.Rate{}, fmt.Errorf("missing %s field", FieldValueKind)
	}
	raw, ok := fields[FieldValue]
	if !ok {
		return rate.Rate{}, fmt.Errorf("missing %s field", FieldValue)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return rate.Rate{}, fmt.Errorf("invalid %s %q: %w", FieldValue, raw, err)
	}
	return rate.New(kind, value)
}

// Encode is the inverse of Decode.
func Encode(r rate.Rate) map[string]string {
	return map[string]string{
		FieldValueKind: string(r.Kind),
		FieldValue:     strconv.FormatFloat(r.Value, 'f', -1, 64),
	}
}

// Static serves rates from an in-memory table, typically the configuration.
type Static struct {
	rates map[string]rate.Rate
}

// NewStatic copies rates into a new Static source.
func NewStatic(rates map[string]rate.Rate) *Static {
	copied := make(map[string]rate.Rate, len(rates))
	for key, r := range rates {
		copied[key] = r
	}
	return &Static{rates: copied}
}

// Lookup implements Source.
func (s *Static) Lookup(_ context.Context, key string) (rate.Rate, error) {
	r, ok := s.rates[key]
	if !ok {
		return rate.Rate{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return r, nil
}

// Chain tries each source in order, moving on only when a source reports
// ErrNotFound.
type Chain []Source

// Lookup implements Source.
func (c Chain) Lookup(ctx context.Context, key string) (rate.Rate, error) {
	for _, source := range c {
		if source == nil {
			continue
		}
		r, err := source.Lookup(ctx, key)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return rate.Rate{}, err
		}
	}
	return rate.Rate{}, fmt.Errorf("%w: %s", ErrNotFound, key)
}
