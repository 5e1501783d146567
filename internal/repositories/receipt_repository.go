package repositories

import (
	"context"
	"errors"
	"fmt"

	"waterbill-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReceiptRepository struct {
	DB *pgxpool.Pool
}

func NewReceiptRepository(db *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{DB: db}
}

func (r *ReceiptRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	// Database sequence keeps numbering O(1) and gap-tolerant
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('receipt_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next receipt number: %w", err)
	}

	return fmt.Sprintf("RCP-%06d", nextNum), nil
}

// Issue creates a receipt for one committed installment and returns it with
// the customer name and billing period filled in.
func (r *ReceiptRepository) Issue(ctx context.Context, recordID int, amount float64, paymentType string) (*models.Receipt, error) {
	receiptNumber, err := r.GenerateReceiptNumber(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		WITH inserted AS (
			INSERT INTO receipts (record_id, receipt_number, amount_paid, payment_type)
			VALUES ($1, $2, $3, $4)
			RETURNING id, record_id, receipt_number, amount_paid, payment_type, issued_at
		)
		SELECT i.id, i.record_id, i.receipt_number, c.name, br.billing_date,
		       i.amount_paid, i.payment_type, i.issued_at
		FROM inserted i
		JOIN billing_records br ON br.id = i.record_id
		JOIN customers c ON c.id = br.customer_id
	`

	receipt := &models.Receipt{}
	err = r.DB.QueryRow(ctx, query, recordID, receiptNumber, amount, paymentType).Scan(
		&receipt.ID,
		&receipt.RecordID,
		&receipt.ReceiptNumber,
		&receipt.CustomerName,
		&receipt.BillingDate,
		&receipt.AmountPaid,
		&receipt.PaymentType,
		&receipt.IssuedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to issue receipt: %w", err)
	}

	return receipt, nil
}

// GetForRecord returns the latest receipt issued against a record, or nil
// when none has been issued yet.
func (r *ReceiptRepository) GetForRecord(ctx context.Context, recordID int) (*models.Receipt, error) {
	query := `
		SELECT rc.id, rc.record_id, rc.receipt_number, c.name, br.billing_date,
		       rc.amount_paid, rc.payment_type, rc.issued_at
		FROM receipts rc
		JOIN billing_records br ON br.id = rc.record_id
		JOIN customers c ON c.id = br.customer_id
		WHERE rc.record_id = $1
		ORDER BY rc.issued_at DESC
		LIMIT 1
	`

	receipt := &models.Receipt{}
	err := r.DB.QueryRow(ctx, query, recordID).Scan(
		&receipt.ID,
		&receipt.RecordID,
		&receipt.ReceiptNumber,
		&receipt.CustomerName,
		&receipt.BillingDate,
		&receipt.AmountPaid,
		&receipt.PaymentType,
		&receipt.IssuedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return receipt, nil
}
