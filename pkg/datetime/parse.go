// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/financing-schedule/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// DueDates returns the monthly due dates of count installments, the first one
// falling one month after startDate.
func DueDates(startDate string, count int) ([]string, error) {
	start, err := time.Parse(DateTimeLayout, startDate)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		dates = append(dates, start.AddDate(0, i, 0).Format(DateTimeLayout))
	}
	return dates, nil
}

// ValidateDate checks that date matches DateTimeLayout.
func ValidateDate(date string) error {
	_, err := time.Parse(DateTimeLayout, date)
	return err
}
