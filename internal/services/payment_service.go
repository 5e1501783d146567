package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"waterbill-backend/internal/billing"
	"waterbill-backend/internal/cache"
	"waterbill-backend/internal/metrics"
	"waterbill-backend/internal/models"
	"waterbill-backend/internal/timeutil"
)

// Payment type labels carried on receipts.
const (
	PaymentTypePreviousFull = "Full Payment (Previous Month)"
	PaymentTypeFirst        = "Payment 1"
	PaymentTypeSecond       = "Payment 2"
)

// PaymentLedger is the ledger side of a commit: the authority for record
// state and balances.
type PaymentLedger interface {
	GetByCustomer(ctx context.Context, customerID int) ([]*models.BillingRecord, error)
	ApplyPayment(ctx context.Context, recordID int, amount float64) (float64, error)
}

// PaymentNotifier covers the notification side effects of a commit.
type PaymentNotifier interface {
	Create(ctx context.Context, n *models.Notification) error
	UnreadPaymentRelated(ctx context.Context, customerID int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int) error
}

// ReceiptIssuer assigns receipt numbers for committed installments.
type ReceiptIssuer interface {
	Issue(ctx context.Context, recordID int, amount float64, paymentType string) (*models.Receipt, error)
}

// PaymentService validates a payment submission against the customer's
// two-month billing window and, when it passes, commits it: ledger write,
// notification reconciliation, receipt, record refresh. Only the ledger
// write is fatal; everything after it is best effort.
type PaymentService struct {
	Ledger        PaymentLedger
	Notifications PaymentNotifier
	Receipts      ReceiptIssuer

	validator *billing.Validator
	now       func() time.Time
}

func NewPaymentService(ledger PaymentLedger, notifications PaymentNotifier, receipts ReceiptIssuer, tolerance float64) *PaymentService {
	return &PaymentService{
		Ledger:        ledger,
		Notifications: notifications,
		Receipts:      receipts,
		validator:     billing.NewValidator(tolerance),
		now:           timeutil.Now,
	}
}

// SetClock overrides the wall clock used for window resolution. Tests use
// this; production keeps Philippine Time.
func (s *PaymentService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// RecordPayment runs validate+commit for one submission. A *billing.Rejection
// return means nothing was written; billing.ErrRecordingFailed means the
// ledger write itself failed. Any other side-effect failure is reported as a
// warning on the CommitResult, never as an error.
func (s *PaymentService) RecordPayment(ctx context.Context, customerID int, sub billing.Submission) (*models.CommitResult, error) {
	records, err := s.Ledger.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for customer %d: %w", customerID, err)
	}

	now := s.now()
	win := billing.ResolveWindow(records, now)

	var record *models.BillingRecord
	for _, rec := range records {
		if rec.ID == sub.RecordID {
			record = rec
			break
		}
	}

	if rej := s.validator.Validate(sub, record, win); rej != nil {
		metrics.PaymentRejectionsTotal.WithLabelValues(string(rej.Reason)).Inc()
		return nil, rej
	}

	paymentType := PaymentTypeFirst
	if win.IsPrevious(record) {
		paymentType = PaymentTypePreviousFull
	} else if record.Payment1 > 0 {
		paymentType = PaymentTypeSecond
	}

	// Step 1: ledger write. The only fatal step.
	newBalance, err := s.Ledger.ApplyPayment(ctx, record.ID, sub.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrRecordingFailed, err)
	}
	metrics.PaymentsRecordedTotal.WithLabelValues(paymentType).Inc()

	result := &models.CommitResult{
		Success:             true,
		RecordID:            record.ID,
		AmountPaid:          sub.Amount,
		PaymentType:         paymentType,
		NewRemainingBalance: newBalance,
	}

	// Step 2: mark the pending payment-proof notifications read. Each one
	// independent; a failure must not unwind a recorded payment.
	result.Warnings = append(result.Warnings, s.reconcileNotifications(ctx, customerID)...)

	// Steps 3-4: issue the receipt and notify the customer.
	if warning := s.sendReceipt(ctx, customerID, record, sub.Amount, paymentType, now, result); warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	// Step 5: refresh so the caller sees the new balance immediately.
	cache.InvalidateRecords(ctx, customerID)
	fresh, err := s.Ledger.GetByCustomer(ctx, customerID)
	if err != nil {
		log.Printf("[Payment] refresh after commit failed for customer %d: %v", customerID, err)
		result.Warnings = append(result.Warnings, "record refresh failed; balances may be stale")
	} else {
		result.Records = fresh
	}

	return result, nil
}

func (s *PaymentService) reconcileNotifications(ctx context.Context, customerID int) []string {
	notifs, err := s.Notifications.UnreadPaymentRelated(ctx, customerID)
	if err != nil {
		log.Printf("[Payment] could not list payment notifications for customer %d: %v", customerID, err)
		return []string{"notification reconciliation skipped"}
	}

	var warnings []string
	for _, n := range notifs {
		if err := s.Notifications.MarkRead(ctx, n.ID); err != nil {
			log.Printf("[Payment] mark-read failed for notification %d: %v", n.ID, err)
			warnings = append(warnings, fmt.Sprintf("notification %d could not be marked read", n.ID))
		}
	}
	return warnings
}

func (s *PaymentService) sendReceipt(ctx context.Context, customerID int, record *models.BillingRecord, amount float64, paymentType string, now time.Time, result *models.CommitResult) string {
	receipt, err := s.Receipts.Issue(ctx, record.ID, amount, paymentType)
	if err != nil {
		log.Printf("[Payment] receipt issuance failed for record %d: %v", record.ID, err)
		return "receipt could not be issued"
	}
	result.Receipt = receipt

	notification := &models.Notification{
		CustomerID: customerID,
		Title:      fmt.Sprintf("Official Receipt: %s", receipt.ReceiptNumber),
		Message: fmt.Sprintf(
			"Hello %s, your %s of ₱%.2f for %s has been confirmed on %s. Receipt Number: %s",
			receipt.CustomerName,
			paymentType,
			amount,
			timeutil.FormatPHT(record.BillingDate, timeutil.MonthLayout),
			timeutil.FormatPHT(now, timeutil.DisplayLayout),
			receipt.ReceiptNumber,
		),
		Type: models.NotificationTypeReceipt,
	}
	if err := s.Notifications.Create(ctx, notification); err != nil {
		log.Printf("[Payment] receipt notification failed for record %d: %v", record.ID, err)
		return "receipt notification could not be sent"
	}
	metrics.NotificationsSentTotal.WithLabelValues(models.NotificationTypeReceipt).Inc()

	return ""
}
