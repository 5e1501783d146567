package services

import (
	"context"
	"fmt"

	"waterbill-backend/internal/metrics"
	"waterbill-backend/internal/models"
)

// NotificationStore is the persistence surface for notifications. MarkRead
// must be idempotent: re-marking a read row succeeds without changing it.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	List(ctx context.Context) ([]*models.Notification, error)
	ListByCustomer(ctx context.Context, customerID int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id int) error
}

// NotificationService handles the admin-facing fan-out: broadcasts to every
// customer and personal notices to one.
type NotificationService struct {
	Repo NotificationStore
}

func NewNotificationService(repo NotificationStore) *NotificationService {
	return &NotificationService{Repo: repo}
}

// Send creates one notification. CustomerID 0 broadcasts to all customers.
func (s *NotificationService) Send(ctx context.Context, req *models.SendNotificationRequest) (*models.Notification, error) {
	notifType := req.Type
	if notifType == "" {
		if req.CustomerID == 0 {
			notifType = models.NotificationTypeBroadcast
		} else {
			notifType = models.NotificationTypePersonal
		}
	}

	n := &models.Notification{
		CustomerID: req.CustomerID,
		Title:      req.Title,
		Message:    req.Message,
		Type:       notifType,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}

	metrics.NotificationsSentTotal.WithLabelValues(notifType).Inc()
	return n, nil
}

func (s *NotificationService) List(ctx context.Context) ([]*models.Notification, error) {
	return s.Repo.List(ctx)
}

func (s *NotificationService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Notification, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id int) error {
	return s.Repo.MarkRead(ctx, id)
}
