package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"upi-service/logging"
	"upi-service/models"
	"upi-service/service"
	"upi-service/upi"
)

// UPIHandler handles HTTP requests for UPI deep links
type UPIHandler struct {
	upiService *service.UPIService
}

// NewUPIHandler creates a new UPI handler
func NewUPIHandler(upiService *service.UPIService) *UPIHandler {
	return &UPIHandler{
		upiService: upiService,
	}
}

// Classify reports whether the submitted URI is a UPI URI
func (h *UPIHandler) Classify(c *gin.Context) {
	var req models.URIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isUPI, err := h.upiService.Classify(c.Request.Context(), req.URI)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ClassifyResponse{URI: req.URI, IsUPI: isUPI})
}

// Decode decodes the submitted URI. The URI is read from a JSON body or,
// for GET, from the uri query parameter.
func (h *UPIHandler) Decode(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	requestID := uuid.NewString()
	c.Header("X-Request-ID", requestID)

	var req models.URIRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID})
		return
	}

	res, err := h.upiService.Decode(ctx, req.URI)
	if err != nil {
		var decodeErr *upi.Error
		switch {
		case errors.As(err, &decodeErr):
			c.JSON(http.StatusUnprocessableEntity, models.NewDecodeErrorResponse(requestID, req.URI, decodeErr))
		case errors.Is(err, service.ErrInvalidURI), errors.Is(err, service.ErrNotUPI):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID})
		default:
			logging.WithTraceContext(span).Error("UPI decode failed",
				zap.Error(err),
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "UPI decode failed", "request_id": requestID})
		}
		return
	}

	span.AddEvent("upi_uri_decoded")
	c.JSON(http.StatusOK, models.NewDecodeResponse(requestID, res))
}

// Diagnose lists every missing mandatory field of the submitted URI
func (h *UPIHandler) Diagnose(c *gin.Context) {
	var req models.URIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	missing, err := h.upiService.Diagnose(c.Request.Context(), req.URI)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := models.DiagnoseResponse{URI: req.URI, Errors: make([]string, 0, len(missing))}
	for _, code := range missing {
		resp.Errors = append(resp.Errors, code.String())
	}
	c.JSON(http.StatusOK, resp)
}

// HealthCheck handles health check requests
func (h *UPIHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// RegisterRoutes mounts the UPI endpoints on r
func (h *UPIHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)

	api := r.Group("/api/upi")
	api.POST("/classify", h.Classify)
	api.GET("/decode", h.Decode)
	api.POST("/decode", h.Decode)
	api.POST("/diagnose", h.Diagnose)
}
