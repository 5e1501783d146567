package timeutil

import (
	"time"
)

// PHT is the Philippine Time location (UTC+8)
var PHT *time.Location

func init() {
	var err error
	PHT, err = time.LoadLocation("Asia/Manila")
	if err != nil {
		// Fallback: create fixed zone if Asia/Manila not available
		PHT = time.FixedZone("PHT", 8*60*60) // UTC+8
	}
}

// Now returns the current time in PHT
func Now() time.Time {
	return time.Now().In(PHT)
}

// ToPHT converts any time to PHT
func ToPHT(t time.Time) time.Time {
	return t.In(PHT)
}

// SameBillingMonth reports whether two dates fall in the same calendar
// billing month, compared in PHT.
func SameBillingMonth(a, b time.Time) bool {
	a = a.In(PHT)
	b = b.In(PHT)
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// PreviousBillingMonth returns the first day of the month before t in PHT.
func PreviousBillingMonth(t time.Time) time.Time {
	t = t.In(PHT)
	return time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, PHT)
}

// StartOfMonth returns the first instant of t's month in PHT.
func StartOfMonth(t time.Time) time.Time {
	t = t.In(PHT)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, PHT)
}

// EndOfMonth returns the last day of t's month at 23:59:59 in PHT.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Second)
}

// Common layouts for PHT formatting
const (
	DateLayout    = "2006-01-02"
	MonthLayout   = "January 2006"
	DisplayLayout = "01/02/2006"
)

// FormatPHT formats a time in PHT using the given layout
func FormatPHT(t time.Time, layout string) string {
	return t.In(PHT).Format(layout)
}
