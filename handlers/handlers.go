package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"report-triage-service/middleware"
	"report-triage-service/models"
	"report-triage-service/services"
)

type TriageHandler struct {
	triageService *services.TriageService
}

func NewTriageHandler(triageService *services.TriageService) *TriageHandler {
	return &TriageHandler{
		triageService: triageService,
	}
}

// HealthCheck returns a simple health status
func (h *TriageHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Service: "report-triage-service",
	})
}

// SubmitReport handles POST /reports: decode the photo, classify, persist.
func (h *TriageHandler) SubmitReport(c *gin.Context) {
	args := &models.SubmitReportRequest{}

	if err := c.BindJSON(args); err != nil {
		log.Errorf("Failed to get the argument in /reports call: %v", err)
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(args.Image)
	if err != nil {
		log.Errorf("Failed to decode report image: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be base64-encoded"})
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	report, err := h.triageService.Submit(c.Request.Context(), principal.UserID, imageData, args.Location)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// GetReports handles GET /reports with severity= and search= query params.
func (h *TriageHandler) GetReports(c *gin.Context) {
	severityFilter := c.DefaultQuery("severity", services.SeverityFilterAll)
	searchTerm := c.Query("search")

	reports, err := h.triageService.QueryReports(c.Request.Context(), severityFilter, searchTerm)
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, &models.ReportsResponse{
		Reports: reports,
	})
}

// GetReport handles GET /reports/:id.
func (h *TriageHandler) GetReport(c *gin.Context) {
	seq, ok := parseSeq(c)
	if !ok {
		return
	}

	report, err := h.triageService.GetReport(c.Request.Context(), seq)
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, report)
}

// GetReportImage handles GET /reports/:id/image: serves the stored photo
// bytes the report's image_ref points at.
func (h *TriageHandler) GetReportImage(c *gin.Context) {
	seq, ok := parseSeq(c)
	if !ok {
		return
	}

	image, err := h.triageService.GetReportImage(c.Request.Context(), seq)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/jpeg", image)
}

// UpdateStatus handles POST /reports/:id/status. Admin-only; the service
// enforces the privilege check so the rule lives with the lifecycle logic.
func (h *TriageHandler) UpdateStatus(c *gin.Context) {
	seq, ok := parseSeq(c)
	if !ok {
		return
	}

	args := &models.UpdateStatusRequest{}
	if err := c.BindJSON(args); err != nil {
		log.Errorf("Failed to get the argument in /reports/:id/status call: %v", err)
		return
	}

	principal := middleware.GetPrincipalFromContext(c)
	report, err := h.triageService.SetStatus(c.Request.Context(), principal, seq, args.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, report)
}

// GetStats handles GET /stats.
func (h *TriageHandler) GetStats(c *gin.Context) {
	stats, err := h.triageService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, stats)
}

func parseSeq(c *gin.Context) (int64, bool) {
	seq, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Errorf("Error in parsing report id param: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "report id must be an integer"})
		return 0, false
	}
	return seq, true
}

// respondError maps the error taxonomy to HTTP status codes. Every branch
// keeps the wrapped message so the client can render something specific.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAuthorization):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrClassification):
		log.Errorf("Classification failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Errorf("Internal failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
