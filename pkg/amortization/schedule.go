// Package amortization builds fixed-installment (French / annuity method)
// loan schedules. It is the single implementation shared by quote
// evaluation, the HTTP API and the printable schedule documents.
package amortization

import (
	"math"

	"github.com/iwvelando/financing-schedule/pkg/constants"
	"github.com/iwvelando/financing-schedule/pkg/mathutil"
)

// Input holds the already-normalized values needed to build a schedule.
type Input struct {
	Principal        float64
	MonthlyRate      float64 // fraction, e.g. 0.0183 for 1.83%
	TermMonths       int
	MonthlyInsurance float64
}

// Row holds the values for a given installment period.
type Row struct {
	Period           int     `json:"period" csv:"period"`
	OpeningBalance   float64 `json:"openingBalance" csv:"opening_balance"`
	Interest         float64 `json:"interest" csv:"interest"`
	PrincipalPortion float64 `json:"principalPortion" csv:"principal"`
	InstallmentTotal float64 `json:"installmentTotal" csv:"installment"`
	ClosingBalance   float64 `json:"closingBalance" csv:"closing_balance"`
}

// Schedule is the result of an amortization run.
type Schedule struct {
	BaseInstallment     float64 `json:"baseInstallment"`
	TotalInstallment    float64 `json:"totalInstallment"`
	EffectiveAnnualRate float64 `json:"effectiveAnnualRate"`
	Rows                []Row   `json:"rows"`
}

// Schedule builds the amortization schedule for the input.
func (in Input) Schedule() Schedule {
	return BuildSchedule(in.Principal, in.MonthlyRate, in.TermMonths, in.MonthlyInsurance)
}

// CalculateBaseInstallment returns the fixed installment that amortizes
// principal over termMonths at monthlyRate, excluding any insurance.
// Rates too small to register over the term fall back to straight-line
// repayment; non-finite inputs yield 0.
func CalculateBaseInstallment(principal, monthlyRate float64, termMonths int) float64 {
	if !validInputs(principal, monthlyRate, termMonths) {
		return 0
	}
	// 1 - (1+r)^-n, computed so neither tiny rates nor long terms lose it.
	discount := -math.Expm1(-float64(termMonths) * math.Log1p(monthlyRate))
	if discount <= 0 || !mathutil.IsFinite(discount) {
		return principal / float64(termMonths)
	}
	return principal * monthlyRate / discount
}

// EffectiveAnnualRate returns the annual equivalent (TEA) of a monthly
// compounding rate.
func EffectiveAnnualRate(monthlyRate float64) float64 {
	if monthlyRate <= 0 {
		return 0
	}
	return math.Pow(1+monthlyRate, constants.MonthsPerYear) - 1
}

// BuildSchedule walks every period of the loan. Non-positive or non-finite
// principal, rate or term produce an empty schedule with zero installments.
func BuildSchedule(principal, monthlyRate float64, termMonths int, monthlyInsurance float64) Schedule {
	if !validInputs(principal, monthlyRate, termMonths) || !mathutil.IsFinite(monthlyInsurance) {
		return Schedule{Rows: []Row{}}
	}

	base := CalculateBaseInstallment(principal, monthlyRate, termMonths)
	total := base + monthlyInsurance
	if base <= 0 || !mathutil.IsFinite(total) {
		return Schedule{Rows: []Row{}}
	}

	rows := make([]Row, 0, termMonths)
	balance := principal
	for period := 1; period <= termMonths; period++ {
		row := Row{
			Period:           period,
			OpeningBalance:   balance,
			Interest:         balance * monthlyRate,
			InstallmentTotal: total,
		}

		if period == termMonths {
			// Accumulated drift is absorbed here so the loan always ends at zero.
			row.PrincipalPortion = balance
			row.ClosingBalance = 0
		} else {
			row.PrincipalPortion = base - row.Interest
			row.ClosingBalance = balance - row.PrincipalPortion
			if mathutil.IsDust(row.ClosingBalance) {
				row.ClosingBalance = 0
			}
		}

		rows = append(rows, row)
		balance = row.ClosingBalance
	}

	return Schedule{
		BaseInstallment:     base,
		TotalInstallment:    total,
		EffectiveAnnualRate: EffectiveAnnualRate(monthlyRate),
		Rows:                rows,
	}
}

func validInputs(principal, monthlyRate float64, termMonths int) bool {
	return termMonths > 0 &&
		principal > 0 && mathutil.IsFinite(principal) &&
		monthlyRate > 0 && mathutil.IsFinite(monthlyRate)
}

// Empty reports whether the schedule has no periods.
func (s Schedule) Empty() bool {
	return len(s.Rows) == 0
}

// TotalInterest sums the interest paid over the whole schedule.
func (s Schedule) TotalInterest() float64 {
	sum := 0.0
	for _, row := range s.Rows {
		sum += row.Interest
	}
	return sum
}

// TotalPrincipal sums the principal portions of every period.
func (s Schedule) TotalPrincipal() float64 {
	sum := 0.0
	for _, row := range s.Rows {
		sum += row.PrincipalPortion
	}
	return sum
}

// TotalPaid is what the borrower pays over the term, insurance included.
func (s Schedule) TotalPaid() float64 {
	return s.TotalInstallment * float64(len(s.Rows))
}
