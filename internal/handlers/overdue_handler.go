package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"waterbill-backend/internal/services"
	"waterbill-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type OverdueHandler struct {
	Service *services.OverdueService
}

func NewOverdueHandler(service *services.OverdueService) *OverdueHandler {
	return &OverdueHandler{Service: service}
}

func (h *OverdueHandler) List(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.Service.ListOverdue(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "users": overdue})
}

func (h *OverdueHandler) SendNotice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordID, err := strconv.Atoi(vars["record_id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	if err := h.Service.SendNotice(r.Context(), recordID); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			utils.Error(w, http.StatusNotFound, "Record is not overdue")
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *OverdueHandler) SendAllNotices(w http.ResponseWriter, r *http.Request) {
	sent, err := h.Service.SendAllNotices(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"success": true, "sent": sent})
}
