package models

import "time"

// Notification categories. The category is stored at creation time; the
// payment reconciliation path still matches on the title because older rows
// predate the category column.
const (
	NotificationTypePaymentPending = "payment_pending"
	NotificationTypeReceipt        = "receipt"
	NotificationTypePersonal       = "personal"
	NotificationTypeOverdue        = "overdue"
	NotificationTypeBroadcast      = "broadcast"
)

type Notification struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"` // 0 = broadcast to all customers
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type SendNotificationRequest struct {
	CustomerID int    `json:"customer_id" validate:"gte=0"` // 0 broadcasts
	Title      string `json:"title" validate:"required"`
	Message    string `json:"message" validate:"required"`
	Type       string `json:"type" validate:"omitempty,oneof=payment_pending receipt personal overdue broadcast"`
}
