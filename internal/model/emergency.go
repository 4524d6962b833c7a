package model

// EmergencyContact mirrors `customer_emergency`. Either the contact number
// or the email must already exist in its global reference table before a
// row can be created.
type EmergencyContact struct {
	EmergencyID        int64   `json:"EmergencyID"`
	EmergencyName      string  `json:"EmergencyName"`
	EmergencyContactNo *string `json:"EmergencyContactNo"`
	EmergencyEmail     *string `json:"EmergencyEmail"`
	Remark             *string `json:"Remark"`
	Audit
}
