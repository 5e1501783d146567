package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"waterbill-backend/internal/models"
	"waterbill-backend/internal/services"
	"waterbill-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"data": notifications})
}

// Send fans a notification out: customer_id 0 broadcasts, anything else is
// a personal notice.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.Service.Send(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, n)
}

// MarkRead is idempotent; re-reading a read notification succeeds quietly.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.Service.MarkRead(r.Context(), id); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
