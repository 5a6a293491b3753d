package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"saccoledger/internal/pkg/models"
	"saccoledger/internal/service/reports"
)

type ReportsHandler struct {
	service *reports.ReportsService
}

func NewReportsHandler(service *reports.ReportsService) *ReportsHandler {
	return &ReportsHandler{service: service}
}

func (h *ReportsHandler) LedgerSummary(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		respondError(c, models.NewValidationError("year query parameter must be an integer"))
		return
	}

	summary, err := h.service.YearlySummary(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, gin.H{"summary": summary})
}
