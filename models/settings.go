package models

// SettingsID is the fixed id of the admin settings singleton document.
const SettingsID = "settings"

// AdminSettings is the clinic-wide settings singleton, mutated only by staff.
type AdminSettings struct {
	ID            string  `bson:"id" json:"-"`
	DoctorContact string  `bson:"doctor_contact" json:"doctor_contact"`
	PaymentLink   string  `bson:"payment_link" json:"payment_link"`
	DefaultAmount float64 `bson:"default_amount" json:"default_amount"`
}
