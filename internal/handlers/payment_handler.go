package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"waterbill-backend/internal/billing"
	"waterbill-backend/internal/models"
	"waterbill-backend/internal/services"
	"waterbill-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

// RecordPayment validates and commits one payment submission against a
// customer's record.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID, err := strconv.Atoi(vars["customer_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	recordID, err := strconv.Atoi(vars["record_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req models.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.RecordPayment(r.Context(), customerID, billing.Submission{
		RecordID: recordID,
		Amount:   req.Amount,
	})
	if err != nil {
		var rej *billing.Rejection
		switch {
		case errors.As(err, &rej):
			status := http.StatusUnprocessableEntity
			if rej.Reason == billing.ReasonRecordNotFound {
				status = http.StatusNotFound
			}
			utils.JSON(w, status, rej)
		case errors.Is(err, billing.ErrRecordingFailed):
			utils.Error(w, http.StatusInternalServerError, "Failed to record payment.")
		default:
			utils.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.JSON(w, http.StatusOK, result)
}
