package billing

import (
	"errors"
	"fmt"
)

// Reason identifies why a payment submission was rejected.
type Reason string

const (
	ReasonInvalidAmount                  Reason = "invalid_amount"
	ReasonRecordNotFound                 Reason = "record_not_found"
	ReasonOutOfWindow                    Reason = "out_of_window"
	ReasonPreviousMonthPartialNotAllowed Reason = "previous_month_partial_not_allowed"
	ReasonPreviousMonthUnpaid            Reason = "previous_month_unpaid"
	ReasonFinalPaymentMismatch           Reason = "final_payment_mismatch"
	ReasonAmountExceedsBalance           Reason = "amount_exceeds_balance"
)

// ErrRecordingFailed wraps a ledger write failure during commit. It is the
// only fatal commit error: nothing after the ledger write may abort the
// operation.
var ErrRecordingFailed = errors.New("payment could not be recorded")

// Rejection is a validation failure surfaced to the caller. RequiredAmount
// is set when the rule demands an exact figure (previous-month full payment
// and the closing installment).
type Rejection struct {
	Reason         Reason  `json:"reason"`
	Message        string  `json:"message"`
	RequiredAmount float64 `json:"required_amount,omitempty"`
}

func (r *Rejection) Error() string {
	return r.Message
}

func reject(reason Reason, format string, args ...interface{}) *Rejection {
	return &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func rejectAmount(reason Reason, required float64, format string, args ...interface{}) *Rejection {
	r := reject(reason, format, args...)
	r.RequiredAmount = required
	return r
}
