package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"waterbill-backend/internal/models"
)

type fakeOverdueLedger struct {
	overdue []*models.OverdueRecord
	markErr error
	marked  []int
}

func (f *fakeOverdueLedger) ListOverdue(ctx context.Context, graceDays int) ([]*models.OverdueRecord, error) {
	return f.overdue, nil
}

func (f *fakeOverdueLedger) MarkOverdueNoticeSent(ctx context.Context, recordID int) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, recordID)
	for _, rec := range f.overdue {
		if rec.RecordID == recordID {
			rec.NoticeSent = true
		}
	}
	return nil
}

func overdueFixture() []*models.OverdueRecord {
	return []*models.OverdueRecord{
		{
			RecordID:         5,
			CustomerID:       7,
			CustomerName:     "Juan Dela Cruz",
			BillingDate:      pht(2025, time.April, 1),
			DueDate:          pht(2025, time.May, 8),
			RemainingBalance: 450.00,
		},
		{
			RecordID:         6,
			CustomerID:       8,
			CustomerName:     "Maria Santos",
			BillingDate:      pht(2025, time.April, 1),
			DueDate:          pht(2025, time.May, 8),
			RemainingBalance: 120.00,
			NoticeSent:       true,
		},
	}
}

func TestSendNoticeDispatchesOnce(t *testing.T) {
	ledger := &fakeOverdueLedger{overdue: overdueFixture()}
	notifier := &fakeNotifier{}
	svc := NewOverdueService(ledger, notifier, 7)

	if err := svc.SendNotice(context.Background(), 5); err != nil {
		t.Fatalf("SendNotice: %v", err)
	}
	if len(notifier.created) != 1 {
		t.Fatalf("created = %d notifications, want 1", len(notifier.created))
	}
	n := notifier.created[0]
	if n.CustomerID != 7 || n.Type != models.NotificationTypeOverdue {
		t.Errorf("notification = %+v", n)
	}
	if len(ledger.marked) != 1 || ledger.marked[0] != 5 {
		t.Errorf("marked = %v, want record 5", ledger.marked)
	}

	// A second send is a no-op: the flag makes retries safe.
	if err := svc.SendNotice(context.Background(), 5); err != nil {
		t.Fatalf("second SendNotice: %v", err)
	}
	if len(notifier.created) != 1 {
		t.Errorf("created = %d notifications after retry, want still 1", len(notifier.created))
	}
}

func TestSendNoticeUnknownRecord(t *testing.T) {
	svc := NewOverdueService(&fakeOverdueLedger{}, &fakeNotifier{}, 7)

	err := svc.SendNotice(context.Background(), 99)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestSendAllNoticesSkipsAlreadyNotified(t *testing.T) {
	ledger := &fakeOverdueLedger{overdue: overdueFixture()}
	notifier := &fakeNotifier{}
	svc := NewOverdueService(ledger, notifier, 7)

	sent, err := svc.SendAllNotices(context.Background())
	if err != nil {
		t.Fatalf("SendAllNotices: %v", err)
	}
	if sent != 1 {
		t.Errorf("sent = %d, want 1 (record 6 already notified)", sent)
	}
	if len(notifier.created) != 1 || notifier.created[0].CustomerID != 7 {
		t.Errorf("created = %+v", notifier.created)
	}
}

func TestSendNoticeFlagFailureStillCountsAsSent(t *testing.T) {
	ledger := &fakeOverdueLedger{overdue: overdueFixture(), markErr: errors.New("row locked")}
	notifier := &fakeNotifier{}
	svc := NewOverdueService(ledger, notifier, 7)

	if err := svc.SendNotice(context.Background(), 5); err != nil {
		t.Fatalf("SendNotice: %v", err)
	}
	if len(notifier.created) != 1 {
		t.Errorf("created = %d notifications, want 1", len(notifier.created))
	}
}
