package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"waterbill-backend/internal/cache"
	"waterbill-backend/internal/metrics"
	"waterbill-backend/internal/models"
	"waterbill-backend/internal/timeutil"
)

var (
	ErrReadingRegression = errors.New("present reading is below the previous reading")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrRecordNotFound    = errors.New("billing record not found")
)

// RecordLedger is the ledger surface the record service writes through.
type RecordLedger interface {
	Create(ctx context.Context, rec *models.BillingRecord) error
	GetByID(ctx context.Context, id int) (*models.BillingRecord, error)
	GetByCustomer(ctx context.Context, customerID int) ([]*models.BillingRecord, error)
	SetPaymentProof(ctx context.Context, recordID int, referenceCode, proofURL string) error
}

type CustomerLookup interface {
	GetByID(ctx context.Context, id int) (*models.Customer, error)
}

// RecordService covers consumption recording (meter reader) and
// payment-proof submission (resident), plus cached ledger reads.
type RecordService struct {
	Ledger        RecordLedger
	Customers     CustomerLookup
	Notifications PaymentNotifier

	RatePerCubic float64
}

func NewRecordService(ledger RecordLedger, customers CustomerLookup, notifications PaymentNotifier, ratePerCubic float64) *RecordService {
	return &RecordService{
		Ledger:        ledger,
		Customers:     customers,
		Notifications: notifications,
		RatePerCubic:  ratePerCubic,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeBill derives consumption and the peso amount from meter readings.
func ComputeBill(previous, present, rate float64) (cubicUsed, totalBill float64) {
	cubicUsed = round2(present - previous)
	totalBill = round2(cubicUsed * rate)
	return cubicUsed, totalBill
}

// CreateRecord turns a meter reading into a billing record for the month of
// the given billing date. The day component is ignored: one record per
// customer per month.
func (s *RecordService) CreateRecord(ctx context.Context, req *models.CreateBillingRecordRequest) (*models.BillingRecord, error) {
	customer, err := s.Customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer %d: %w", req.CustomerID, err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	if req.PresentReading < req.PreviousReading {
		return nil, ErrReadingRegression
	}

	billingDate, err := time.ParseInLocation(timeutil.DateLayout, req.BillingDate, timeutil.PHT)
	if err != nil {
		return nil, fmt.Errorf("invalid billing date %q: %w", req.BillingDate, err)
	}

	cubicUsed, totalBill := ComputeBill(req.PreviousReading, req.PresentReading, s.RatePerCubic)

	rec := &models.BillingRecord{
		CustomerID:      req.CustomerID,
		BillingDate:     timeutil.StartOfMonth(billingDate),
		PreviousReading: req.PreviousReading,
		PresentReading:  req.PresentReading,
		CubicUsed:       cubicUsed,
		TotalBill:       totalBill,
	}
	if err := s.Ledger.Create(ctx, rec); err != nil {
		return nil, err
	}

	cache.InvalidateRecords(ctx, req.CustomerID)
	return rec, nil
}

// SubmitProof attaches payment evidence to a record and raises the unread
// admin notification that the payment-recording flow later reconciles.
func (s *RecordService) SubmitProof(ctx context.Context, recordID int, req *models.SubmitProofRequest) error {
	rec, err := s.Ledger.GetByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("failed to load record %d: %w", recordID, err)
	}
	if rec == nil {
		return ErrRecordNotFound
	}

	if err := s.Ledger.SetPaymentProof(ctx, recordID, req.ReferenceCode, req.ProofURL); err != nil {
		return fmt.Errorf("failed to store payment proof: %w", err)
	}

	notification := &models.Notification{
		CustomerID: rec.CustomerID,
		Title:      "Payment Proof Submitted",
		Message: fmt.Sprintf("A payment proof (ref %s) was submitted for the %s bill.",
			req.ReferenceCode, timeutil.FormatPHT(rec.BillingDate, timeutil.MonthLayout)),
		Type: models.NotificationTypePaymentPending,
	}
	if err := s.Notifications.Create(ctx, notification); err != nil {
		// The proof itself is stored; the admin alert is best effort.
		log.Printf("[Record] proof notification failed for record %d: %v", recordID, err)
	} else {
		metrics.NotificationsSentTotal.WithLabelValues(models.NotificationTypePaymentPending).Inc()
	}

	cache.InvalidateRecords(ctx, rec.CustomerID)
	return nil
}

// GetRecordsForCustomer reads the customer's ledger, serving the redis
// snapshot when one is still valid.
func (s *RecordService) GetRecordsForCustomer(ctx context.Context, customerID int) ([]*models.BillingRecord, error) {
	if data, ok := cache.GetCachedRecords(ctx, customerID); ok {
		var records []*models.BillingRecord
		if err := json.Unmarshal(data, &records); err == nil {
			return records, nil
		}
		// Corrupt snapshot: fall through to the database
		cache.InvalidateRecords(ctx, customerID)
	}

	records, err := s.Ledger.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		cache.CacheRecords(ctx, customerID, data)
	}
	return records, nil
}
