package handlers

import (
	"net/http"
	"strconv"

	"waterbill-backend/internal/services"
	"waterbill-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type CustomerHandler struct {
	Customers     *services.CustomerService
	Records       *services.RecordService
	Notifications *services.NotificationService
}

func NewCustomerHandler(customers *services.CustomerService, records *services.RecordService, notifications *services.NotificationService) *CustomerHandler {
	return &CustomerHandler{Customers: customers, Records: records, Notifications: notifications}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"data": customers})
}

// GetRecords returns the customer's full billing history, newest first.
func (h *CustomerHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.Atoi(vars["customer_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	records, err := h.Records.GetRecordsForCustomer(r.Context(), customerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"data": records})
}

func (h *CustomerHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.Atoi(vars["customer_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	notifications, err := h.Notifications.ListByCustomer(r.Context(), customerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"data": notifications})
}
