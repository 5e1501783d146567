package models

// CommitResult is the outcome of a successful validate+commit call. The
// payment is durable once the ledger write succeeds; Warnings carry any
// best-effort side effects that failed afterwards.
type CommitResult struct {
	Success             bool             `json:"success"`
	RecordID            int              `json:"record_id"`
	AmountPaid          float64          `json:"amount_paid"`
	PaymentType         string           `json:"payment_type"`
	NewRemainingBalance float64          `json:"new_remaining_balance"`
	Receipt             *Receipt         `json:"receipt,omitempty"`
	Records             []*BillingRecord `json:"records"`
	Warnings            []string         `json:"warnings,omitempty"`
}
