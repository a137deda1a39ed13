package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"medbuddy/models"
)

// AppointmentPDF renders the appointment slip for a confirmation code.
func (h *BookingHandler) AppointmentPDF(c *gin.Context) {
	code := c.Param("code")
	appt, err := h.Service.GetByCode(c.Request.Context(), code)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data, err := renderSlip(appt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", appt.ConfirmationCode))
	c.Data(http.StatusOK, "application/pdf", data)
}

func renderSlip(appt *models.Appointment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, "Appointment Slip", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	fields := []struct{ label, value string }{
		{"Confirmation", appt.ConfirmationCode},
		{"Patient", appt.PatientName},
		{"Mobile", appt.Mobile},
		{"Date", appt.AppointmentDate},
		{"Time", appt.SlotTime},
		{"Status", string(appt.Status)},
	}
	for _, f := range fields {
		pdf.CellFormat(0, 10, fmt.Sprintf("%s: %s", f.label, f.value), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render appointment slip: %w", err)
	}
	return buf.Bytes(), nil
}
