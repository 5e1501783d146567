package repositories

import (
	"context"
	"fmt"

	"waterbill-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (customer_id, title, message, type)
		VALUES (NULLIF($1, 0), $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.DB.QueryRow(ctx, query, n.CustomerID, n.Title, n.Message, n.Type).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) List(ctx context.Context) ([]*models.Notification, error) {
	query := `
		SELECT id, COALESCE(customer_id, 0), title, message, type, is_read, created_at
		FROM notifications
		ORDER BY created_at DESC
	`
	return r.query(ctx, query)
}

func (r *NotificationRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Notification, error) {
	query := `
		SELECT id, COALESCE(customer_id, 0), title, message, type, is_read, created_at
		FROM notifications
		WHERE customer_id = $1 OR customer_id IS NULL
		ORDER BY created_at DESC
	`
	return r.query(ctx, query, customerID)
}

// UnreadPaymentRelated returns the customer's unread notifications whose
// title marks them payment-related. Title matching, not the type column, is
// the contract here: rows written before the type column existed still have
// to reconcile.
func (r *NotificationRepository) UnreadPaymentRelated(ctx context.Context, customerID int) ([]*models.Notification, error) {
	query := `
		SELECT id, COALESCE(customer_id, 0), title, message, type, is_read, created_at
		FROM notifications
		WHERE customer_id = $1 AND NOT is_read AND title LIKE '%Payment%'
		ORDER BY created_at ASC
	`
	return r.query(ctx, query, customerID)
}

// MarkRead flips a notification to read. Marking an already-read (or
// missing) notification is a no-op, not an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (r *NotificationRepository) query(ctx context.Context, query string, args ...interface{}) ([]*models.Notification, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		err := rows.Scan(
			&n.ID,
			&n.CustomerID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}
