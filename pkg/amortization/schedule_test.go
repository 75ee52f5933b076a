package amortization

import (
	"math"
	"testing"
)

func TestCalculateBaseInstallment(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		monthlyRate   float64
		termMonths    int
		expectedRange []float64 // [min, max] expected range
	}{
		{
			name:          "Vehicle credit 36 months",
			principal:     10000000,
			monthlyRate:   0.0183,
			termMonths:    36,
			expectedRange: []float64{381697, 381698}, // 381,697.63
		},
		{
			name:          "30-year mortgage at 4.5% nominal",
			principal:     175000,
			monthlyRate:   0.045 / 12,
			termMonths:    360,
			expectedRange: []float64{886.69, 886.71},
		},
		{
			name:          "Single installment repays principal plus one month of interest",
			principal:     1000,
			monthlyRate:   0.02,
			termMonths:    1,
			expectedRange: []float64{1019.99, 1020.01},
		},
		{
			name:          "Zero principal",
			principal:     0,
			monthlyRate:   0.02,
			termMonths:    12,
			expectedRange: []float64{0, 0},
		},
		{
			name:          "Zero rate",
			principal:     12000,
			monthlyRate:   0,
			termMonths:    12,
			expectedRange: []float64{0, 0},
		},
		{
			name:          "Rate too small to compound falls back to straight-line",
			principal:     1000,
			monthlyRate:   1e-17,
			termMonths:    12,
			expectedRange: []float64{83.33, 83.34},
		},
		{
			name:          "Term long enough to overflow the compound factor",
			principal:     1000,
			monthlyRate:   0.015,
			termMonths:    50000,
			expectedRange: []float64{14.99, 15.01},
		},
		{
			name:          "NaN principal",
			principal:     math.NaN(),
			monthlyRate:   0.02,
			termMonths:    12,
			expectedRange: []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateBaseInstallment(tt.principal, tt.monthlyRate, tt.termMonths)
			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateBaseInstallment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestBuildScheduleDegenerateInputs(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		monthlyRate float64
		termMonths  int
	}{
		{"Zero principal", 0, 0.0183, 36},
		{"Negative principal", -500, 0.0183, 36},
		{"Zero rate", 10000000, 0, 36},
		{"Negative rate", 10000000, -0.01, 36},
		{"Zero term", 10000000, 0.0183, 0},
		{"Negative term", 10000000, 0.0183, -12},
		{"NaN principal", math.NaN(), 0.0183, 36},
		{"Infinite principal", math.Inf(1), 0.0183, 36},
		{"NaN rate", 10000000, math.NaN(), 36},
		{"Infinite rate", 10000000, math.Inf(1), 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := BuildSchedule(tt.principal, tt.monthlyRate, tt.termMonths, 25000)
			if !schedule.Empty() {
				t.Errorf("expected empty schedule, got %d rows", len(schedule.Rows))
			}
			if schedule.Rows == nil {
				t.Errorf("expected non-nil empty row slice")
			}
			if schedule.BaseInstallment != 0 || schedule.TotalInstallment != 0 {
				t.Errorf("expected zero installments, got base=%.2f total=%.2f",
					schedule.BaseInstallment, schedule.TotalInstallment)
			}
		})
	}
}

func TestBuildScheduleInvariants(t *testing.T) {
	tests := []struct {
		name             string
		principal        float64
		monthlyRate      float64
		termMonths       int
		monthlyInsurance float64
	}{
		{"Vehicle credit", 10000000, 0.0183, 36, 0},
		{"Vehicle credit with insurance", 10000000, 0.0183, 36, 45000},
		{"Motorcycle credit", 4500000, 0.021, 24, 12000},
		{"Single period", 1000, 0.02, 1, 0},
		{"Long mortgage", 175000, 0.045 / 12, 360, 80},
		{"Tiny rate", 5000, 0.00001, 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := BuildSchedule(tt.principal, tt.monthlyRate, tt.termMonths, tt.monthlyInsurance)

			if len(schedule.Rows) != tt.termMonths {
				t.Fatalf("expected %d rows, got %d", tt.termMonths, len(schedule.Rows))
			}
			if schedule.Rows[0].OpeningBalance != tt.principal {
				t.Errorf("first opening balance = %.2f, expected %.2f", schedule.Rows[0].OpeningBalance, tt.principal)
			}
			last := schedule.Rows[len(schedule.Rows)-1]
			if last.ClosingBalance != 0 {
				t.Errorf("last closing balance = %v, expected exactly 0", last.ClosingBalance)
			}
			if last.PrincipalPortion != last.OpeningBalance {
				t.Errorf("last principal portion = %v, expected opening balance %v", last.PrincipalPortion, last.OpeningBalance)
			}

			expectedTotal := schedule.BaseInstallment + tt.monthlyInsurance
			if schedule.TotalInstallment != expectedTotal {
				t.Errorf("total installment = %.2f, expected %.2f", schedule.TotalInstallment, expectedTotal)
			}

			for i, row := range schedule.Rows {
				if row.Period != i+1 {
					t.Errorf("row %d has period %d", i, row.Period)
				}
				if row.InstallmentTotal != expectedTotal {
					t.Errorf("period %d installment = %.2f, expected %.2f", row.Period, row.InstallmentTotal, expectedTotal)
				}
				if math.Abs(row.Interest-row.OpeningBalance*tt.monthlyRate) > 1e-9 {
					t.Errorf("period %d interest = %v, expected opening*rate", row.Period, row.Interest)
				}
				if i > 0 && row.OpeningBalance != schedule.Rows[i-1].ClosingBalance {
					t.Errorf("period %d opening %.4f != previous closing %.4f",
						row.Period, row.OpeningBalance, schedule.Rows[i-1].ClosingBalance)
				}
			}

			if math.Abs(schedule.TotalPrincipal()-tt.principal) > 1 {
				t.Errorf("sum of principal portions = %.4f, expected %.2f", schedule.TotalPrincipal(), tt.principal)
			}
		})
	}
}

func TestBuildScheduleExtremeInputsStayFinite(t *testing.T) {
	tests := []struct {
		name        string
		principal   float64
		monthlyRate float64
		termMonths  int
	}{
		{"Rate below float resolution", 1000, 1e-17, 12},
		{"Fifty thousand months", 1000, 0.015, 50000},
		{"Huge principal", 1e300, 0.0183, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := BuildSchedule(tt.principal, tt.monthlyRate, tt.termMonths, 0)
			if !isFinite(schedule.BaseInstallment) || !isFinite(schedule.TotalInstallment) {
				t.Fatalf("non-finite installments: base=%v total=%v", schedule.BaseInstallment, schedule.TotalInstallment)
			}
			if schedule.Empty() {
				return
			}
			if len(schedule.Rows) != tt.termMonths {
				t.Fatalf("got %d rows, expected %d", len(schedule.Rows), tt.termMonths)
			}
			for _, row := range schedule.Rows {
				if !isFinite(row.OpeningBalance) || !isFinite(row.Interest) ||
					!isFinite(row.PrincipalPortion) || !isFinite(row.ClosingBalance) {
					t.Fatalf("period %d has non-finite values: %+v", row.Period, row)
				}
			}
			if last := schedule.Rows[len(schedule.Rows)-1]; last.ClosingBalance != 0 {
				t.Errorf("final closing balance = %v, expected 0", last.ClosingBalance)
			}
			if math.Abs(schedule.TotalPrincipal()-tt.principal) > tt.principal*1e-9 {
				t.Errorf("sum of principal portions = %v, expected %v", schedule.TotalPrincipal(), tt.principal)
			}
		})
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func TestBuildScheduleInsuranceDoesNotAmortize(t *testing.T) {
	without := BuildSchedule(10000000, 0.0183, 36, 0)
	with := BuildSchedule(10000000, 0.0183, 36, 45000)

	if with.BaseInstallment != without.BaseInstallment {
		t.Errorf("insurance changed base installment: %.2f vs %.2f", with.BaseInstallment, without.BaseInstallment)
	}
	for i := range without.Rows {
		if with.Rows[i].ClosingBalance != without.Rows[i].ClosingBalance {
			t.Errorf("period %d closing balance differs with insurance: %.2f vs %.2f",
				i+1, with.Rows[i].ClosingBalance, without.Rows[i].ClosingBalance)
		}
	}
	if diff := with.TotalPaid() - without.TotalPaid(); math.Abs(diff-45000*36) > 0.01 {
		t.Errorf("insurance over the term = %.2f, expected %.2f", diff, 45000.0*36)
	}
}

func TestBuildScheduleConcreteVehicleCredit(t *testing.T) {
	schedule := Input{Principal: 10000000, MonthlyRate: 0.0183, TermMonths: 36}.Schedule()

	if math.Abs(schedule.BaseInstallment-381697.63) > 0.01 {
		t.Errorf("base installment = %.2f, expected 381697.63", schedule.BaseInstallment)
	}
	if len(schedule.Rows) != 36 {
		t.Fatalf("expected 36 rows, got %d", len(schedule.Rows))
	}
	first := schedule.Rows[0]
	if math.Abs(first.Interest-183000) > 0.001 {
		t.Errorf("first interest = %.2f, expected 183000.00", first.Interest)
	}
	if math.Abs(first.PrincipalPortion-198697.63) > 0.01 {
		t.Errorf("first principal = %.2f, expected 198697.63", first.PrincipalPortion)
	}
	if schedule.Rows[35].ClosingBalance != 0 {
		t.Errorf("final closing balance = %v, expected 0", schedule.Rows[35].ClosingBalance)
	}
	if math.Abs(schedule.EffectiveAnnualRate-0.243108) > 0.000001 {
		t.Errorf("effective annual rate = %.6f, expected 0.243108", schedule.EffectiveAnnualRate)
	}
	if math.Abs(schedule.TotalInterest()-(schedule.TotalPaid()-10000000)) > 0.01 {
		t.Errorf("total interest %.2f does not reconcile with total paid %.2f",
			schedule.TotalInterest(), schedule.TotalPaid())
	}
}

func TestEffectiveAnnualRate(t *testing.T) {
	tests := []struct {
		name        string
		monthlyRate float64
		expected    float64
	}{
		{"One percent monthly", 0.01, 0.126825},
		{"1.83 percent monthly", 0.0183, 0.243108},
		{"Zero rate", 0, 0},
		{"Negative rate", -0.01, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EffectiveAnnualRate(tt.monthlyRate)
			if math.Abs(result-tt.expected) > 0.000001 {
				t.Errorf("EffectiveAnnualRate(%v) = %.6f, expected %.6f", tt.monthlyRate, result, tt.expected)
			}
		})
	}
}

func TestBuildScheduleIsDeterministic(t *testing.T) {
	first := BuildSchedule(7350000, 0.0171, 48, 31000)
	second := BuildSchedule(7350000, 0.0171, 48, 31000)

	if first.BaseInstallment != second.BaseInstallment {
		t.Fatalf("base installment differs between runs")
	}
	for i := range first.Rows {
		if first.Rows[i] != second.Rows[i] {
			t.Fatalf("row %d differs between runs: %+v vs %+v", i, first.Rows[i], second.Rows[i])
		}
	}
}

func BenchmarkBuildSchedule(b *testing.B) {
	for i := 0; i < b.N; i++ {
		BuildSchedule(70450000, 0.0183, 72, 45000)
	}
}
