package services

import (
	"context"
	"fmt"
	"log"

	"waterbill-backend/internal/metrics"
	"waterbill-backend/internal/models"
	"waterbill-backend/internal/timeutil"
)

// OverdueLedger is the ledger surface for arrears tracking.
type OverdueLedger interface {
	ListOverdue(ctx context.Context, graceDays int) ([]*models.OverdueRecord, error)
	MarkOverdueNoticeSent(ctx context.Context, recordID int) error
}

// OverdueService lists records past their due date and dispatches the
// one-time overdue notices.
type OverdueService struct {
	Ledger        OverdueLedger
	Notifications PaymentNotifier
	GraceDays     int
}

func NewOverdueService(ledger OverdueLedger, notifications PaymentNotifier, graceDays int) *OverdueService {
	return &OverdueService{Ledger: ledger, Notifications: notifications, GraceDays: graceDays}
}

func (s *OverdueService) ListOverdue(ctx context.Context) ([]*models.OverdueRecord, error) {
	return s.Ledger.ListOverdue(ctx, s.GraceDays)
}

// SendNotice dispatches the overdue notice for one record. A record whose
// notice already went out is skipped, so retries cannot double-notify.
func (s *OverdueService) SendNotice(ctx context.Context, recordID int) error {
	overdue, err := s.Ledger.ListOverdue(ctx, s.GraceDays)
	if err != nil {
		return fmt.Errorf("failed to list overdue records: %w", err)
	}

	for _, rec := range overdue {
		if rec.RecordID != recordID {
			continue
		}
		if rec.NoticeSent {
			return nil
		}
		return s.dispatch(ctx, rec)
	}
	return ErrRecordNotFound
}

// SendAllNotices dispatches notices for every overdue record that has not
// had one yet. Failures are logged per record and do not stop the sweep.
func (s *OverdueService) SendAllNotices(ctx context.Context) (int, error) {
	overdue, err := s.Ledger.ListOverdue(ctx, s.GraceDays)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue records: %w", err)
	}

	sent := 0
	for _, rec := range overdue {
		if rec.NoticeSent {
			continue
		}
		if err := s.dispatch(ctx, rec); err != nil {
			log.Printf("[Overdue] notice for record %d failed: %v", rec.RecordID, err)
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *OverdueService) dispatch(ctx context.Context, rec *models.OverdueRecord) error {
	n := &models.Notification{
		CustomerID: rec.CustomerID,
		Title:      "Overdue Water Bill Notice",
		Message: fmt.Sprintf(
			"Dear %s, your %s bill of ₱%.2f was due on %s. Please settle it to avoid disconnection.",
			rec.CustomerName,
			timeutil.FormatPHT(rec.BillingDate, timeutil.MonthLayout),
			rec.RemainingBalance,
			timeutil.FormatPHT(rec.DueDate, timeutil.DisplayLayout),
		),
		Type: models.NotificationTypeOverdue,
	}
	if err := s.Notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to send overdue notice: %w", err)
	}
	metrics.NotificationsSentTotal.WithLabelValues(models.NotificationTypeOverdue).Inc()

	if err := s.Ledger.MarkOverdueNoticeSent(ctx, rec.RecordID); err != nil {
		// The notice went out; a failed flag update means at worst one
		// duplicate on a later sweep.
		log.Printf("[Overdue] could not flag record %d as notified: %v", rec.RecordID, err)
	}
	return nil
}
