package models

import (
	"fmt"
	"time"
)

// Status is the appointment lifecycle state. The set is closed; staff updates
// must go through CanTransitionTo rather than writing arbitrary strings.
type Status string

const (
	StatusReserved  Status = "RESERVED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusReserved, StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// RESERVED may become CONFIRMED, CANCELLED or EXPIRED; CONFIRMED may only be
// cancelled administratively. CANCELLED and EXPIRED are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusReserved:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusExpired
	case StatusConfirmed:
		return next == StatusCancelled
	}
	return false
}

// Appointment is a reservation record in the ledger. Records are never
// physically deleted; history is append-only via Status.
type Appointment struct {
	ID               string     `bson:"id" json:"id"`
	ConfirmationCode string     `bson:"confirmation_code" json:"confirmation_code"`
	PatientName      string     `bson:"patient_name" json:"patient_name"`
	Mobile           string     `bson:"mobile" json:"mobile"`
	Address          string     `bson:"address" json:"address"`
	SlotID           string     `bson:"slot_id" json:"slot_id"`
	AppointmentDate  string     `bson:"appointment_date" json:"appointment_date"` // "2006-01-02"
	SlotTime         string     `bson:"slot_time" json:"slot_time"`               // "10:00-10:30"
	StartAt          time.Time  `bson:"start_at" json:"start_at"`                 // derived from date + slot start
	Status           Status     `bson:"status" json:"status"`
	MeetingLink      string     `bson:"meeting_link,omitempty" json:"meeting_link,omitempty"`
	AdminRemarks     string     `bson:"admin_remarks,omitempty" json:"admin_remarks,omitempty"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updated_at"`
	LastRemindedAt   *time.Time `bson:"last_reminded_at,omitempty" json:"last_reminded_at,omitempty"`
}

// ConfirmationCode formats a booking code from the appointment sequence number
// and the booking time, e.g. MB-20240110-0001. The date is the booking date,
// not the slot date.
func ConfirmationCode(seq int64, bookedAt time.Time) string {
	return fmt.Sprintf("MB-%s-%04d", bookedAt.Format("20060102"), seq)
}

// SlotStartAt parses a slot date and start time ("2006-01-02", "15:04") into
// a local wall-clock time.
func SlotStartAt(date, startTime string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+startTime, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot date/time %q %q: %w", date, startTime, err)
	}
	return t, nil
}

// BookingRequest defines the payload for reserving a slot.
type BookingRequest struct {
	SlotID      string `json:"slot_id" binding:"required"`
	PatientName string `json:"patient_name" binding:"required"`
	Mobile      string `json:"mobile" binding:"required"`
	Address     string `json:"address"`
}

// StatusUpdateRequest defines the staff payload for updating an appointment.
type StatusUpdateRequest struct {
	Status      string `json:"status" binding:"required"`
	MeetingLink string `json:"meeting_link"`
	Remarks     string `json:"remarks"`
}

// DashboardStats summarizes the ledger for the admin dashboard.
type DashboardStats struct {
	Total     int64 `json:"total"`
	Reserved  int64 `json:"reserved"`
	Confirmed int64 `json:"confirmed"`
	Today     int64 `json:"today"`
}
