package billing

import (
	"testing"
	"time"

	"waterbill-backend/internal/models"
	"waterbill-backend/internal/timeutil"
)

func pht(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, timeutil.PHT)
}

func TestResolveWindow(t *testing.T) {
	now := pht(2025, time.June, 15)
	records := []*models.BillingRecord{
		{ID: 1, BillingDate: pht(2025, time.June, 1)},
		{ID: 2, BillingDate: pht(2025, time.May, 1)},
		{ID: 3, BillingDate: pht(2025, time.April, 1)},
	}

	win := ResolveWindow(records, now)
	if win.Current == nil || win.Current.ID != 1 {
		t.Fatalf("Current = %+v, want record 1", win.Current)
	}
	if win.Previous == nil || win.Previous.ID != 2 {
		t.Fatalf("Previous = %+v, want record 2", win.Previous)
	}
	if win.InWindow(records[2]) {
		t.Error("April record should be outside the window")
	}
}

func TestResolveWindowJanuary(t *testing.T) {
	// Previous month of January is December of the prior year.
	now := pht(2026, time.January, 5)
	records := []*models.BillingRecord{
		{ID: 10, BillingDate: pht(2026, time.January, 1)},
		{ID: 11, BillingDate: pht(2025, time.December, 1)},
	}

	win := ResolveWindow(records, now)
	if win.Current == nil || win.Current.ID != 10 {
		t.Fatalf("Current = %+v, want record 10", win.Current)
	}
	if win.Previous == nil || win.Previous.ID != 11 {
		t.Fatalf("Previous = %+v, want December record 11", win.Previous)
	}
}

func TestResolveWindowMissingMonths(t *testing.T) {
	now := pht(2025, time.June, 15)
	records := []*models.BillingRecord{
		{ID: 3, BillingDate: pht(2025, time.April, 1)},
	}

	win := ResolveWindow(records, now)
	if win.Current != nil || win.Previous != nil {
		t.Errorf("window = %+v, want both sides nil", win)
	}
}

func TestHasArrears(t *testing.T) {
	prev := &models.BillingRecord{ID: 2, RemainingBalance: 120.00}
	win := Window{Previous: prev}
	if !win.HasArrears() {
		t.Error("positive previous balance should report arrears")
	}

	prev.RemainingBalance = 0
	if win.HasArrears() {
		t.Error("settled previous month should not report arrears")
	}

	if (Window{}).HasArrears() {
		t.Error("missing previous record should not report arrears")
	}
}
