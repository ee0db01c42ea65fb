package http

import (
	"net/http"

	"github.com/cutikita/leave-backend-go/internal/handler/http/response"
	reportService "github.com/cutikita/leave-backend-go/internal/service/report"
)

type ReportHandler interface {
	GetLeaveSummary(w http.ResponseWriter, r *http.Request)
	GetTypeUsage(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService *reportService.ReportService
}

// GetLeaveSummary implements ReportHandler.
func (h *ReportHandlerImpl) GetLeaveSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.GetLeaveSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetTypeUsage implements ReportHandler.
func (h *ReportHandlerImpl) GetTypeUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.reportService.GetTypeUsage(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, usage)
}

func NewReportHandler(service *reportService.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: service}
}
