package billing

import (
	"log"

	"waterbill-backend/internal/models"
)

// PaymentStatus is derived from a record's balance, never stored.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "Unpaid"
	StatusPartial PaymentStatus = "Partial"
	StatusPaid    PaymentStatus = "Paid"
	StatusUnknown PaymentStatus = "Unknown"
)

// Status classifies a record by its remaining balance. The Paid/Unpaid
// boundaries use exact equality: balances are stored already rounded to
// centavo precision, so no epsilon applies here.
func Status(rec *models.BillingRecord) PaymentStatus {
	if rec == nil {
		return StatusUnpaid
	}
	switch {
	case rec.RemainingBalance == rec.TotalBill:
		return StatusUnpaid
	case rec.RemainingBalance > 0 && rec.RemainingBalance < rec.TotalBill:
		return StatusPartial
	case rec.RemainingBalance == 0:
		return StatusPaid
	}
	// Negative balance or balance above the bill means the ledger row is
	// corrupt; surface it in the logs, never silently.
	log.Printf("[Billing] record %d has inconsistent balance: total=%.2f remaining=%.2f",
		rec.ID, rec.TotalBill, rec.RemainingBalance)
	return StatusUnknown
}
