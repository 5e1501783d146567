package repositories

import (
	"context"
	"errors"
	"fmt"

	"waterbill-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrRecordSettled is returned when a payment targets a record that is
// already closed or already carries two installments. The ledger enforces
// this independently of the validator so a lost race can never produce a
// third installment.
var ErrRecordSettled = errors.New("record already settled or has two installments")

type BillingRecordRepository struct {
	DB *pgxpool.Pool
}

func NewBillingRecordRepository(db *pgxpool.Pool) *BillingRecordRepository {
	return &BillingRecordRepository{DB: db}
}

const billingRecordColumns = `
	id, customer_id, billing_date, previous_reading, present_reading,
	cubic_used, total_bill, payment_1, payment_2, remaining_balance,
	COALESCE(reference_code, ''), COALESCE(proof_url, ''),
	overdue_notice_sent, created_at
`

func scanBillingRecord(row pgx.Row) (*models.BillingRecord, error) {
	rec := &models.BillingRecord{}
	err := row.Scan(
		&rec.ID,
		&rec.CustomerID,
		&rec.BillingDate,
		&rec.PreviousReading,
		&rec.PresentReading,
		&rec.CubicUsed,
		&rec.TotalBill,
		&rec.Payment1,
		&rec.Payment2,
		&rec.RemainingBalance,
		&rec.ReferenceCode,
		&rec.ProofURL,
		&rec.OverdueNoticeSent,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *BillingRecordRepository) Create(ctx context.Context, rec *models.BillingRecord) error {
	query := `
		INSERT INTO billing_records (customer_id, billing_date, previous_reading, present_reading,
		                             cubic_used, total_bill, remaining_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at
	`

	err := r.DB.QueryRow(ctx, query,
		rec.CustomerID,
		rec.BillingDate,
		rec.PreviousReading,
		rec.PresentReading,
		rec.CubicUsed,
		rec.TotalBill,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create billing record: %w", err)
	}

	rec.RemainingBalance = rec.TotalBill
	return nil
}

func (r *BillingRecordRepository) GetByID(ctx context.Context, id int) (*models.BillingRecord, error) {
	query := `SELECT ` + billingRecordColumns + ` FROM billing_records WHERE id = $1`
	rec, err := scanBillingRecord(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *BillingRecordRepository) GetByCustomer(ctx context.Context, customerID int) ([]*models.BillingRecord, error) {
	query := `
		SELECT ` + billingRecordColumns + `
		FROM billing_records
		WHERE customer_id = $1
		ORDER BY billing_date DESC
	`

	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.BillingRecord
	for rows.Next() {
		rec, err := scanBillingRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// ApplyPayment records one installment against a record in a single
// statement. The first payment lands in payment_1, the second in payment_2;
// the WHERE clause refuses a third installment or a payment against a
// settled record, and the balance never drops below zero (tolerance
// payments settle to exactly zero).
func (r *BillingRecordRepository) ApplyPayment(ctx context.Context, recordID int, amount float64) (float64, error) {
	query := `
		UPDATE billing_records
		SET payment_1 = CASE WHEN payment_1 = 0 THEN $2 ELSE payment_1 END,
		    payment_2 = CASE WHEN payment_1 = 0 THEN payment_2 ELSE $2 END,
		    remaining_balance = GREATEST(ROUND((remaining_balance - $2)::numeric, 2), 0)
		WHERE id = $1
		  AND remaining_balance > 0
		  AND NOT (payment_1 > 0 AND payment_2 > 0)
		RETURNING remaining_balance
	`

	var newBalance float64
	err := r.DB.QueryRow(ctx, query, recordID, amount).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrRecordSettled
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply payment: %w", err)
	}
	return newBalance, nil
}

// SetPaymentProof attaches the payer-submitted evidence to a record.
func (r *BillingRecordRepository) SetPaymentProof(ctx context.Context, recordID int, referenceCode, proofURL string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE billing_records SET reference_code = $2, proof_url = $3 WHERE id = $1`,
		recordID, referenceCode, proofURL)
	if err != nil {
		return fmt.Errorf("failed to set payment proof: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListOverdue returns prior-month records with a balance whose due date
// (end of billing month plus the grace period) has passed.
func (r *BillingRecordRepository) ListOverdue(ctx context.Context, graceDays int) ([]*models.OverdueRecord, error) {
	query := `
		SELECT br.id, br.customer_id, c.name, br.billing_date,
		       (date_trunc('month', br.billing_date) + INTERVAL '1 month')::date + $1,
		       br.remaining_balance, br.overdue_notice_sent
		FROM billing_records br
		JOIN customers c ON c.id = br.customer_id
		WHERE br.remaining_balance > 0
		  AND NOT c.is_deactivated
		  AND (date_trunc('month', br.billing_date) + INTERVAL '1 month')::date + $1 < CURRENT_DATE
		ORDER BY br.billing_date ASC
	`

	rows, err := r.DB.Query(ctx, query, graceDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overdue []*models.OverdueRecord
	for rows.Next() {
		o := &models.OverdueRecord{}
		err := rows.Scan(
			&o.RecordID,
			&o.CustomerID,
			&o.CustomerName,
			&o.BillingDate,
			&o.DueDate,
			&o.RemainingBalance,
			&o.NoticeSent,
		)
		if err != nil {
			return nil, err
		}
		overdue = append(overdue, o)
	}

	return overdue, rows.Err()
}

func (r *BillingRecordRepository) MarkOverdueNoticeSent(ctx context.Context, recordID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE billing_records SET overdue_notice_sent = TRUE WHERE id = $1`, recordID)
	return err
}

// AggregateTotals computes the dashboard KPI figures, optionally filtered
// to one month and/or year (0 = no filter).
func (r *BillingRecordRepository) AggregateTotals(ctx context.Context, month, year int) (float64, float64, float64, float64, error) {
	query := `
		SELECT COALESCE(SUM(total_bill), 0),
		       COALESCE(SUM(remaining_balance), 0),
		       COALESCE(SUM(payment_1 + payment_2), 0),
		       COALESCE(SUM(cubic_used), 0)
		FROM billing_records
		WHERE ($1 = 0 OR EXTRACT(MONTH FROM billing_date) = $1)
		  AND ($2 = 0 OR EXTRACT(YEAR FROM billing_date) = $2)
	`

	var billed, outstanding, collected, cubic float64
	err := r.DB.QueryRow(ctx, query, month, year).Scan(&billed, &outstanding, &collected, &cubic)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return billed, outstanding, collected, cubic, nil
}

// MonthlySeries returns per-month billed/collected/consumption rows for the
// dashboard charts, oldest month first.
func (r *BillingRecordRepository) MonthlySeries(ctx context.Context, year int) ([]models.MonthlyReportRow, error) {
	query := `
		SELECT to_char(date_trunc('month', billing_date), 'YYYY-MM'),
		       COALESCE(SUM(total_bill), 0),
		       COALESCE(SUM(payment_1 + payment_2), 0),
		       COALESCE(SUM(cubic_used), 0)
		FROM billing_records
		WHERE ($1 = 0 OR EXTRACT(YEAR FROM billing_date) = $1)
		GROUP BY date_trunc('month', billing_date)
		ORDER BY date_trunc('month', billing_date)
	`

	rows, err := r.DB.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []models.MonthlyReportRow
	for rows.Next() {
		var row models.MonthlyReportRow
		if err := rows.Scan(&row.Month, &row.Billed, &row.Collected, &row.CubicUsed); err != nil {
			return nil, err
		}
		series = append(series, row)
	}

	return series, rows.Err()
}
