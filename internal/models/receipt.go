package models

import "time"

type Receipt struct {
	ID            int       `json:"id"`
	RecordID      int       `json:"record_id"`
	ReceiptNumber string    `json:"receipt_number"`
	CustomerName  string    `json:"name"`
	BillingDate   time.Time `json:"billing_date"`
	AmountPaid    float64   `json:"amount_paid"`
	PaymentType   string    `json:"payment_type"`
	IssuedAt      time.Time `json:"issued_at"`
}
