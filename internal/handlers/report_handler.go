package handlers

import (
	"net/http"
	"strconv"

	"waterbill-backend/internal/services"
	"waterbill-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// Summary serves the dashboard KPIs. month and year query params filter;
// both default to all-time.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if month < 0 || month > 12 {
		utils.Error(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	summary, err := h.Service.Summary(r.Context(), month, year)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}
