package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbuddy/models"
	"medbuddy/services/reservation"
)

// BookingHandler serves the patient-facing booking endpoints.
type BookingHandler struct {
	Service reservation.ReservationService
	Logger  *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc reservation.ReservationService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// ListSlots returns the open slots, ordered by date and start time.
func (h *BookingHandler) ListSlots(c *gin.Context) {
	slots, err := h.Service.ListAvailableSlots(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	c.JSON(http.StatusOK, slots)
}

// Book reserves a slot and returns the confirmation code.
func (h *BookingHandler) Book(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"confirmation_code": appt.ConfirmationCode,
	})
}

// Status looks an appointment up by confirmation code.
func (h *BookingHandler) Status(c *gin.Context) {
	var req struct {
		ConfirmationCode string `json:"confirmation_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := h.Service.GetByCode(c.Request.Context(), req.ConfirmationCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// History returns a patient's appointments, newest first.
func (h *BookingHandler) History(c *gin.Context) {
	var req struct {
		Mobile string `json:"mobile" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appts, err := h.Service.GetHistory(c.Request.Context(), req.Mobile)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// Cancel releases a reservation. The operation is idempotent, so the response
// is success even when there was nothing to cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	code := c.Param("code")
	if err := h.Service.Cancel(c.Request.Context(), code); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondServiceError maps reservation errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case reservation.HasCode(err, reservation.CodeSlotUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Slot not available"})
	case reservation.HasCode(err, reservation.CodeValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case reservation.HasCode(err, reservation.CodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case reservation.HasCode(err, reservation.CodeConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		zap.L().Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "temporary failure, please retry"})
	}
}
