package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"waterbill-backend/internal/handlers"
)

func NewRouter(
	customerHandler *handlers.CustomerHandler,
	recordHandler *handlers.RecordHandler,
	paymentHandler *handlers.PaymentHandler,
	notificationHandler *handlers.NotificationHandler,
	overdueHandler *handlers.OverdueHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Customers
	r.HandleFunc("/api/customers", customerHandler.List).Methods("GET")
	r.HandleFunc("/api/customers/{customer_id}/records", customerHandler.GetRecords).Methods("GET")
	r.HandleFunc("/api/customers/{customer_id}/notifications", customerHandler.GetNotifications).Methods("GET")

	// Billing records and payments
	r.HandleFunc("/api/records", recordHandler.Create).Methods("POST")
	r.HandleFunc("/api/records/{record_id}/proof", recordHandler.SubmitProof).Methods("POST")
	r.HandleFunc("/api/records/{record_id}/receipt", recordHandler.GetReceipt).Methods("GET")
	r.HandleFunc("/api/customers/{customer_id}/records/{record_id}/payments", paymentHandler.RecordPayment).Methods("POST")

	// Notifications
	r.HandleFunc("/api/notifications", notificationHandler.List).Methods("GET")
	r.HandleFunc("/api/notifications", notificationHandler.Send).Methods("POST")
	r.HandleFunc("/api/notifications/{id}/read", notificationHandler.MarkRead).Methods("PUT")

	// Overdue accounts
	r.HandleFunc("/api/overdue", overdueHandler.List).Methods("GET")
	r.HandleFunc("/api/overdue/{record_id}/notice", overdueHandler.SendNotice).Methods("POST")
	r.HandleFunc("/api/overdue/notices", overdueHandler.SendAllNotices).Methods("POST")

	// Reports
	r.HandleFunc("/api/reports/summary", reportHandler.Summary).Methods("GET")

	// Operational endpoints
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
