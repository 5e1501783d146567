package billing

import (
	"math"

	"waterbill-backend/internal/models"
)

// DefaultAmountTolerance is the absolute tolerance for "amount equals
// balance" checks. Monetary rounding conventions vary by deployment, so the
// validator takes its tolerance from configuration and this is only the
// fallback.
const DefaultAmountTolerance = 0.01

// Submission is one candidate payment: a record id plus the amount the
// admin entered. It lives only for the duration of a single validate+commit.
type Submission struct {
	RecordID int
	Amount   float64
}

// Validator enforces the payment sequencing rules:
//
//   - previous month must be settled in full, exactly
//   - current month is blocked while the previous month carries a balance
//   - a record takes at most two installments, and the second always closes
//     the balance exactly
type Validator struct {
	Tolerance float64
}

func NewValidator(tolerance float64) *Validator {
	if tolerance <= 0 {
		tolerance = DefaultAmountTolerance
	}
	return &Validator{Tolerance: tolerance}
}

func (v *Validator) amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < v.Tolerance
}

// Validate checks a submission against the resolved record and the
// customer's two-month window. record is the row the submission's id
// resolved to, or nil when it resolved to nothing. A nil return means the
// payment may be committed.
func (v *Validator) Validate(sub Submission, record *models.BillingRecord, win Window) *Rejection {
	if math.IsNaN(sub.Amount) || sub.Amount <= 0 {
		return reject(ReasonInvalidAmount, "Enter a valid payment amount.")
	}

	if record == nil {
		return reject(ReasonRecordNotFound, "Record not found.")
	}

	if win.IsPrevious(record) {
		if record.RemainingBalance > 0 && !v.amountsEqual(sub.Amount, record.RemainingBalance) {
			return rejectAmount(ReasonPreviousMonthPartialNotAllowed, record.RemainingBalance,
				"Previous month requires FULL payment of ₱%.2f.", record.RemainingBalance)
		}
		return nil
	}

	if win.IsCurrent(record) {
		if win.HasArrears() {
			return reject(ReasonPreviousMonthUnpaid,
				"You must fully pay the previous month before paying the current month.")
		}

		if record.Payment1 > 0 {
			// Second installment always closes the record exactly.
			if !v.amountsEqual(sub.Amount, record.RemainingBalance) {
				return rejectAmount(ReasonFinalPaymentMismatch, record.RemainingBalance,
					"Final payment must be exactly ₱%.2f.", record.RemainingBalance)
			}
			return nil
		}

		if sub.Amount > record.RemainingBalance {
			return reject(ReasonAmountExceedsBalance, "Payment exceeds remaining balance.")
		}
		return nil
	}

	// The admin screen only ever offers the two-month window, so this is a
	// precondition violation rather than an expected case.
	return reject(ReasonOutOfWindow, "Record is outside the current billing window.")
}
