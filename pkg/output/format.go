// Package output provides utilities for formatting and displaying quote schedules.
package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/iwvelando/financing-schedule/internal/quote"
	"github.com/iwvelando/financing-schedule/pkg/format"
	"github.com/iwvelando/financing-schedule/pkg/mathutil"
)

// ScheduleRecord is one line of the CSV schedule document.
type ScheduleRecord struct {
	Quote            string `csv:"quote"`
	Period           int    `csv:"period"`
	DueDate          string `csv:"due_date"`
	OpeningBalance   string `csv:"opening_balance"`
	Interest         string `csv:"interest"`
	PrincipalPortion string `csv:"principal"`
	InstallmentTotal string `csv:"installment"`
	ClosingBalance   string `csv:"closing_balance"`
}

// Records flattens results into CSV records, one per period.
func Records(results []quote.Result) []ScheduleRecord {
	var records []ScheduleRecord
	for _, result := range results {
		for i, row := range result.Schedule.Rows {
			record := ScheduleRecord{
				Quote:            result.Name,
				Period:           row.Period,
				OpeningBalance:   amount(row.OpeningBalance),
				Interest:         amount(row.Interest),
				PrincipalPortion: amount(row.PrincipalPortion),
				InstallmentTotal: amount(row.InstallmentTotal),
				ClosingBalance:   amount(row.ClosingBalance),
			}
			if i < len(result.DueDates) {
				record.DueDate = result.DueDates[i]
			}
			records = append(records, record)
		}
	}
	return records
}

// WritePretty writes the human-readable schedule tables to w.
func WritePretty(w io.Writer, results []quote.Result) {
	for i, result := range results {
		header := result.Name
		if result.Client != "" {
			header = fmt.Sprintf("%s (%s)", result.Name, result.Client)
		}
		_, _ = fmt.Fprintf(w, "--- Schedule for quote %s ---\n", header)
		_, _ = fmt.Fprintf(w, "Principal: %s | Monthly rate: %s | Effective annual rate: %s\n",
			format.Currency(result.Principal),
			format.Percent(result.MonthlyRate, 2),
			format.Percent(result.Schedule.EffectiveAnnualRate, 2))

		if result.Schedule.Empty() {
			_, _ = fmt.Fprintf(w, "No installments\n")
		} else {
			schedule := result.Schedule
			_, _ = fmt.Fprintf(w, "Base installment: %s | Insurance: %s | Installment: %s | Periods: %d\n",
				format.Currency(schedule.BaseInstallment),
				format.Currency(schedule.TotalInstallment-schedule.BaseInstallment),
				format.Currency(schedule.TotalInstallment),
				len(schedule.Rows))
			_, _ = fmt.Fprintf(w, "Period | Due     | Opening | Interest | Principal | Installment | Closing\n")
			_, _ = fmt.Fprintf(w, "______ | _______ | _______ | ________ | _________ | ___________ | _______\n")
			for j, row := range schedule.Rows {
				due := "-"
				if j < len(result.DueDates) {
					due = result.DueDates[j]
				}
				_, _ = fmt.Fprintf(w, "%6d | %-7s | %s | %s | %s | %s | %s\n",
					row.Period, due,
					format.Currency(row.OpeningBalance),
					format.Currency(row.Interest),
					format.Currency(row.PrincipalPortion),
					format.Currency(row.InstallmentTotal),
					format.Currency(row.ClosingBalance))
			}
			_, _ = fmt.Fprintf(w, "Total interest: %s | Total paid: %s\n",
				format.Currency(schedule.TotalInterest()),
				format.Currency(schedule.TotalPaid()))
		}

		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// WriteCSV writes the schedule document for all results to w.
func WriteCSV(w io.Writer, results []quote.Result) error {
	records := Records(results)
	if records == nil {
		records = []ScheduleRecord{}
	}
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("failed to write schedule CSV: %w", err)
	}
	return nil
}

// CsvString returns the CSV schedule document as a string.
func CsvString(results []quote.Result) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// amount renders value with two decimals; values that round to zero print
// as "0.00" rather than "-0.00".
func amount(value float64) string {
	rounded := mathutil.Round(value)
	if rounded == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", rounded)
}
