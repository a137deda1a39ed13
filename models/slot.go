package models

// Slot represents a bookable time window published by the clinic staff.
type Slot struct {
	ID        string `bson:"id" json:"id"`
	Date      string `bson:"slot_date" json:"slot_date"`   // e.g., "2025-02-25"
	StartTime string `bson:"start_time" json:"start_time"` // e.g., "10:00"
	EndTime   string `bson:"end_time" json:"end_time"`     // e.g., "10:30"
	IsBooked  bool   `bson:"is_booked" json:"is_booked"`
}

// TimeRange renders the slot window as stored on appointments, e.g. "10:00-10:30".
func (s Slot) TimeRange() string {
	return s.StartTime + "-" + s.EndTime
}

// AddSlotRequest defines the payload for publishing a new slot.
type AddSlotRequest struct {
	Date      string `json:"slot_date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
