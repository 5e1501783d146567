package models

import "time"

// BillingRecord is one customer-month of consumption and payment state.
// remaining_balance is maintained by the ledger as
// total_bill - payment_1 - payment_2; readers treat it as authoritative.
type BillingRecord struct {
	ID                int       `json:"id"`
	CustomerID        int       `json:"customer_id"`
	BillingDate       time.Time `json:"billing_date"`
	PreviousReading   float64   `json:"previous_reading"`
	PresentReading    float64   `json:"present_reading"`
	CubicUsed         float64   `json:"cubic_used"`
	TotalBill         float64   `json:"total_bill"`
	Payment1          float64   `json:"payment_1"`
	Payment2          float64   `json:"payment_2"`
	RemainingBalance  float64   `json:"remaining_balance"`
	ReferenceCode     string    `json:"reference_code,omitempty"`
	ProofURL          string    `json:"proof_url,omitempty"`
	OverdueNoticeSent bool      `json:"overdue_notice_sent"`
	CreatedAt         time.Time `json:"created_at"`
}

type CreateBillingRecordRequest struct {
	CustomerID      int     `json:"customer_id" validate:"required,gt=0"`
	BillingDate     string  `json:"billing_date" validate:"required"` // YYYY-MM-DD, day ignored
	PreviousReading float64 `json:"previous_reading" validate:"gte=0"`
	PresentReading  float64 `json:"present_reading" validate:"gte=0"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

type SubmitProofRequest struct {
	ReferenceCode string `json:"reference_code" validate:"required"`
	ProofURL      string `json:"proof_url" validate:"omitempty,uri"`
}

// OverdueRecord is a row in the overdue users panel: a prior-period record
// with a positive balance past its due date.
type OverdueRecord struct {
	RecordID         int       `json:"record_id"`
	CustomerID       int       `json:"customer_id"`
	CustomerName     string    `json:"name"`
	BillingDate      time.Time `json:"billing_date"`
	DueDate          time.Time `json:"due_date"`
	RemainingBalance float64   `json:"remaining_balance"`
	NoticeSent       bool      `json:"notice_sent"`
}
