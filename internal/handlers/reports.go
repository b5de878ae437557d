package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mquintal/aitutor/internal/services"
	"github.com/mquintal/aitutor/pkg/errors"
	"github.com/mquintal/aitutor/pkg/response"
)

// ReportHandler exposes progress report tracking and email delivery.
type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type addReportRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	ReportPath string `json:"report_path" validate:"required"`
}

// POST /api/reports
func (h *ReportHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req addReportRequest
	if !bindAndValidate(c, &req) {
		return
	}

	report, err := h.reports.Add(requestContext(c), userID, req.Title, req.ReportPath)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"report": report})
}

// GET /api/reports
func (h *ReportHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	reports, err := h.reports.ListForUser(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reports": reports})
}

type emailReportRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// POST /api/reports/:id/email
func (h *ReportHandler) Email(c *gin.Context) {
	reportID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req emailReportRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.reports.EmailReport(requestContext(c), reportID, req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"emailed": true})
}
