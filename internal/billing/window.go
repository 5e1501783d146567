package billing

import (
	"time"

	"waterbill-backend/internal/models"
	"waterbill-backend/internal/timeutil"
)

// Window holds the two records a payment may target: the calendar-current
// month and the month immediately before it. Either side may be nil.
type Window struct {
	Current  *models.BillingRecord
	Previous *models.BillingRecord
}

// ResolveWindow selects the current- and previous-month records from a
// customer's full history by billing-date match against now.
func ResolveWindow(records []*models.BillingRecord, now time.Time) Window {
	prevMonth := timeutil.PreviousBillingMonth(now)

	var win Window
	for _, rec := range records {
		switch {
		case timeutil.SameBillingMonth(rec.BillingDate, now):
			win.Current = rec
		case timeutil.SameBillingMonth(rec.BillingDate, prevMonth):
			win.Previous = rec
		}
	}
	return win
}

// InWindow reports whether the record is one of the two months the window
// covers.
func (w Window) InWindow(rec *models.BillingRecord) bool {
	if rec == nil {
		return false
	}
	return (w.Current != nil && rec.ID == w.Current.ID) ||
		(w.Previous != nil && rec.ID == w.Previous.ID)
}

// IsPrevious reports whether the record is the previous-month record.
func (w Window) IsPrevious(rec *models.BillingRecord) bool {
	return rec != nil && w.Previous != nil && rec.ID == w.Previous.ID
}

// IsCurrent reports whether the record is the current-month record.
func (w Window) IsCurrent(rec *models.BillingRecord) bool {
	return rec != nil && w.Current != nil && rec.ID == w.Current.ID
}

// HasArrears reports whether the previous-month record still carries a
// balance, which blocks current-month payments entirely.
func (w Window) HasArrears() bool {
	return w.Previous != nil && w.Previous.RemainingBalance > 0
}
