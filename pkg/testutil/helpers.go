// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/financing-schedule/internal/quote"
)

// FindResult finds a quote result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []quote.Result, name string) *quote.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
