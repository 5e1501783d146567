package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"waterbill-backend/internal/models"
	"waterbill-backend/internal/repositories"
	"waterbill-backend/internal/services"
	"waterbill-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New()

type RecordHandler struct {
	Service  *services.RecordService
	Receipts *repositories.ReceiptRepository
}

func NewRecordHandler(service *services.RecordService, receipts *repositories.ReceiptRepository) *RecordHandler {
	return &RecordHandler{Service: service, Receipts: receipts}
}

// Create records a meter reading as a new billing record.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBillingRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.Service.CreateRecord(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			utils.Error(w, http.StatusNotFound, "Customer not found")
		case errors.Is(err, services.ErrReadingRegression):
			utils.Error(w, http.StatusUnprocessableEntity, "Present reading cannot be below the previous reading")
		default:
			utils.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.JSON(w, http.StatusCreated, rec)
}

// SubmitProof attaches payer evidence to a record and alerts the admin.
func (h *RecordHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordID, err := strconv.Atoi(vars["record_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req models.SubmitProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.SubmitProof(r.Context(), recordID, &req); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			utils.Error(w, http.StatusNotFound, "Record not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetReceipt returns the latest receipt issued against a record.
func (h *RecordHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordID, err := strconv.Atoi(vars["record_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	receipt, err := h.Receipts.GetForRecord(r.Context(), recordID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if receipt == nil {
		utils.Error(w, http.StatusNotFound, "No receipt issued for this record")
		return
	}

	utils.JSON(w, http.StatusOK, receipt)
}
