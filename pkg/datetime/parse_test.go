package datetime

import (
	"testing"
)

func TestDueDates(t *testing.T) {
	dates, err := DueDates("2025-11", 4)
	if err != nil {
		t.Fatalf("DueDates() unexpected error = %v", err)
	}
	expected := []string{"2025-12", "2026-01", "2026-02", "2026-03"}
	if len(dates) != len(expected) {
		t.Fatalf("DueDates() returned %d dates, expected %d", len(dates), len(expected))
	}
	for i := range expected {
		if dates[i] != expected[i] {
			t.Errorf("DueDates()[%d] = %s, expected %s", i, dates[i], expected[i])
		}
	}

	empty, err := DueDates("2025-11", 0)
	if err != nil || len(empty) != 0 {
		t.Errorf("DueDates() with zero count = %v, %v", empty, err)
	}

	if _, err := DueDates("November", 3); err == nil {
		t.Errorf("DueDates() expected error for invalid start date")
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2026-07"); err != nil {
		t.Errorf("ValidateDate() unexpected error = %v", err)
	}
	if err := ValidateDate("2026-13"); err == nil {
		t.Errorf("ValidateDate() expected error for month 13")
	}
}
