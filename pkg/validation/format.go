// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/financing-schedule/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidatePaginationCounts rejects negative sibling or boundary counts.
func ValidatePaginationCounts(siblingCount, boundaryCount int) error {
	if siblingCount < 0 {
		return fmt.Errorf("sibling count must not be negative, got %d", siblingCount)
	}
	if boundaryCount < 0 {
		return fmt.Errorf("boundary count must not be negative, got %d", boundaryCount)
	}
	return nil
}

// ValidateTermMonths rejects terms longer than constants.MaxTermMonths.
// Non-positive terms are allowed; they produce an empty schedule.
func ValidateTermMonths(termMonths int) error {
	if termMonths > constants.MaxTermMonths {
		return fmt.Errorf("term of %d months exceeds the maximum of %d", termMonths, constants.MaxTermMonths)
	}
	return nil
}

// ValidateTotalPages rejects page counts above constants.MaxTotalPages.
func ValidateTotalPages(totalPages int) error {
	if totalPages > constants.MaxTotalPages {
		return fmt.Errorf("total pages of %d exceeds the maximum of %d", totalPages, constants.MaxTotalPages)
	}
	return nil
}
