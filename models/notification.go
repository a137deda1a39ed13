package models

// ReminderPayload is the message enqueued for the reminder worker when an
// upcoming appointment falls inside the lookahead window.
type ReminderPayload struct {
	AppointmentID    string `json:"appointmentId"`
	ConfirmationCode string `json:"confirmationCode"`
	PatientName      string `json:"patientName"`
	Mobile           string `json:"mobile"`
	AppointmentDate  string `json:"appointmentDate"`
	SlotTime         string `json:"slotTime"`
	Status           string `json:"status"`
}
