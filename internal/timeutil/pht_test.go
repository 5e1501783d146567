package timeutil

import (
	"testing"
	"time"
)

func TestSameBillingMonth(t *testing.T) {
	a := time.Date(2025, time.June, 1, 0, 0, 0, 0, PHT)
	b := time.Date(2025, time.June, 30, 23, 59, 59, 0, PHT)
	if !SameBillingMonth(a, b) {
		t.Error("dates in the same PHT month should match")
	}

	c := time.Date(2025, time.July, 1, 0, 0, 0, 0, PHT)
	if SameBillingMonth(a, c) {
		t.Error("dates in different months should not match")
	}
}

func TestSameBillingMonthCrossTimezone(t *testing.T) {
	// 2025-06-30 20:00 UTC is already July 1st in Manila.
	utc := time.Date(2025, time.June, 30, 20, 0, 0, 0, time.UTC)
	july := time.Date(2025, time.July, 5, 0, 0, 0, 0, PHT)
	if !SameBillingMonth(utc, july) {
		t.Error("UTC instant past Manila midnight should compare as July")
	}
}

func TestPreviousBillingMonth(t *testing.T) {
	got := PreviousBillingMonth(time.Date(2026, time.January, 15, 12, 0, 0, 0, PHT))
	want := time.Date(2025, time.December, 1, 0, 0, 0, 0, PHT)
	if !got.Equal(want) {
		t.Errorf("PreviousBillingMonth(Jan 2026) = %v, want %v", got, want)
	}
}

func TestStartAndEndOfMonth(t *testing.T) {
	mid := time.Date(2025, time.February, 14, 9, 30, 0, 0, PHT)

	start := StartOfMonth(mid)
	if start.Day() != 1 || start.Month() != time.February || start.Hour() != 0 {
		t.Errorf("StartOfMonth = %v", start)
	}

	end := EndOfMonth(mid)
	if end.Day() != 28 || end.Month() != time.February {
		t.Errorf("EndOfMonth = %v", end)
	}
}

func TestFormatPHT(t *testing.T) {
	d := time.Date(2025, time.June, 1, 0, 0, 0, 0, PHT)
	if got := FormatPHT(d, MonthLayout); got != "June 2025" {
		t.Errorf("FormatPHT month = %q, want %q", got, "June 2025")
	}
	if got := FormatPHT(d, DisplayLayout); got != "06/01/2025" {
		t.Errorf("FormatPHT display = %q, want %q", got, "06/01/2025")
	}
}
