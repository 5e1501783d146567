package billing

import (
	"math"
	"testing"
	"time"

	"waterbill-backend/internal/models"
)

func testWindow() (Window, *models.BillingRecord, *models.BillingRecord) {
	current := &models.BillingRecord{
		ID:               1,
		BillingDate:      pht(2025, time.June, 1),
		TotalBill:        300.00,
		RemainingBalance: 300.00,
	}
	previous := &models.BillingRecord{
		ID:               2,
		BillingDate:      pht(2025, time.May, 1),
		TotalBill:        150.00,
		RemainingBalance: 0,
	}
	return Window{Current: current, Previous: previous}, current, previous
}

func TestValidateInvalidAmount(t *testing.T) {
	v := NewValidator(0.01)
	win, current, _ := testWindow()

	for _, amount := range []float64{0, -5, math.NaN()} {
		rej := v.Validate(Submission{RecordID: current.ID, Amount: amount}, current, win)
		if rej == nil {
			t.Fatalf("amount %v: expected rejection", amount)
		}
		if rej.Reason != ReasonInvalidAmount {
			t.Errorf("amount %v: reason = %q, want %q", amount, rej.Reason, ReasonInvalidAmount)
		}
	}
}

func TestValidateRecordNotFound(t *testing.T) {
	v := NewValidator(0.01)
	win, _, _ := testWindow()

	rej := v.Validate(Submission{RecordID: 99, Amount: 100}, nil, win)
	if rej == nil || rej.Reason != ReasonRecordNotFound {
		t.Fatalf("rejection = %+v, want reason %q", rej, ReasonRecordNotFound)
	}
}

func TestValidatePreviousMonthFullPayment(t *testing.T) {
	v := NewValidator(0.01)
	win, _, previous := testWindow()
	previous.RemainingBalance = 150.00

	// Exact amount passes.
	if rej := v.Validate(Submission{RecordID: previous.ID, Amount: 150.00}, previous, win); rej != nil {
		t.Fatalf("exact amount rejected: %+v", rej)
	}

	// Within tolerance passes.
	if rej := v.Validate(Submission{RecordID: previous.ID, Amount: 150.005}, previous, win); rej != nil {
		t.Fatalf("amount within tolerance rejected: %+v", rej)
	}

	// Partial amount is rejected with the required figure.
	rej := v.Validate(Submission{RecordID: previous.ID, Amount: 100.00}, previous, win)
	if rej == nil || rej.Reason != ReasonPreviousMonthPartialNotAllowed {
		t.Fatalf("rejection = %+v, want reason %q", rej, ReasonPreviousMonthPartialNotAllowed)
	}
	if rej.RequiredAmount != 150.00 {
		t.Errorf("RequiredAmount = %.2f, want 150.00", rej.RequiredAmount)
	}

	// Just outside tolerance is rejected.
	if rej := v.Validate(Submission{RecordID: previous.ID, Amount: 150.02}, previous, win); rej == nil {
		t.Error("amount outside tolerance should be rejected")
	}
}

func TestValidateArrearsBlockCurrentMonth(t *testing.T) {
	v := NewValidator(0.01)
	win, current, previous := testWindow()
	previous.RemainingBalance = 150.00

	rej := v.Validate(Submission{RecordID: current.ID, Amount: 100.00}, current, win)
	if rej == nil || rej.Reason != ReasonPreviousMonthUnpaid {
		t.Fatalf("rejection = %+v, want reason %q", rej, ReasonPreviousMonthUnpaid)
	}
}

func TestValidateFirstInstallment(t *testing.T) {
	v := NewValidator(0.01)
	win, current, _ := testWindow()

	// Partial first installment is allowed.
	if rej := v.Validate(Submission{RecordID: current.ID, Amount: 100.00}, current, win); rej != nil {
		t.Fatalf("partial first installment rejected: %+v", rej)
	}

	// Exactly the balance is allowed.
	if rej := v.Validate(Submission{RecordID: current.ID, Amount: 300.00}, current, win); rej != nil {
		t.Fatalf("full first installment rejected: %+v", rej)
	}

	// Overpayment is rejected, with no tolerance on the comparison.
	rej := v.Validate(Submission{RecordID: current.ID, Amount: 500.00}, current, win)
	if rej == nil || rej.Reason != ReasonAmountExceedsBalance {
		t.Fatalf("rejection = %+v, want reason %q", rej, ReasonAmountExceedsBalance)
	}
}

func TestValidateSecondInstallmentMustClose(t *testing.T) {
	v := NewValidator(0.01)
	win, current, _ := testWindow()
	current.Payment1 = 150.00
	current.RemainingBalance = 150.00

	// Anything other than the exact balance is rejected.
	rej := v.Validate(Submission{RecordID: current.ID, Amount: 100.00}, current, win)
	if rej == nil || rej.Reason != ReasonFinalPaymentMismatch {
		t.Fatalf("rejection = %+v, want reason %q", rej, ReasonFinalPaymentMismatch)
	}
	if rej.RequiredAmount != 150.00 {
		t.Errorf("RequiredAmount = %.2f, want 150.00", rej.RequiredAmount)
	}

	// The closing amount passes, within tolerance.
	if rej := v.Validate(Submission{RecordID: current.ID, Amount: 150.00}, current, win); rej != nil {
		t.Fatalf("closing installment rejected: %+v", rej)
	}
	if rej := v.Validate(Submission{RecordID: current.ID, Amount: 149.995}, current, win); rej != nil {
		t.Fatalf("closing installment within tolerance rejected: %+v", rej)
	}
}

func TestValidateOutOfWindow(t *testing.T) {
	v := NewValidator(0.01)
	win, _, _ := testWindow()
	stale := &models.BillingRecord{
		ID:               9,
		BillingDate:      pht(2025, time.March, 1),
		TotalBill:        200.00,
		RemainingBalance: 200.00,
	}

	rej := v.Validate(Submission{RecordID: stale.ID, Amount: 200.00}, stale, win)
	if rej == nil || rej.Reason != ReasonOutOfWindow {
		t.Fatalf("rejection = %+v, want reason %q", rej, ReasonOutOfWindow)
	}
}

func TestNewValidatorFallbackTolerance(t *testing.T) {
	v := NewValidator(0)
	if v.Tolerance != DefaultAmountTolerance {
		t.Errorf("Tolerance = %v, want %v", v.Tolerance, DefaultAmountTolerance)
	}
}
