package model

// Customer mirrors the `customers` table. Pointer fields are nullable
// columns; the starred ones reference lookup or shared reference tables and
// are checked by the foreign-key validator before any write:
//
//	CustomerEmail         -> global_email.Email
//	CustomerContactNo     -> global_contact.Contact
//	CustomerGender        -> global_gender.Gender
//	CustomerNationality   -> global_country.Country
//	CustomerAddress       -> global_address.AddressUUID
//	CustomerStatus        -> customer_status.StatusID
//	CustomerMaritalStatus -> global_marital_status.MaritalStatus
//	CustomerRace          -> global_race.Race
//	CustomerLanguage      -> global_language.Language
//	CustomerTag           -> customer_taglist.TagID
type Customer struct {
	CustomerUUID          string   `json:"CustomerUUID"`
	CustomerName          string   `json:"CustomerName"`
	CustomerEmail         *string  `json:"CustomerEmail"`
	CustomerContactNo     *string  `json:"CustomerContactNo"`
	CustomerICPassportNo  *string  `json:"CustomerICPassportNo"`
	CustomerGender        *string  `json:"CustomerGender"`
	CustomerSalutation    *string  `json:"CustomerSalutation"`
	CustomerOccupation    *string  `json:"CustomerOccupation"`
	CustomerNationality   *string  `json:"CustomerNationality"`
	CustomerAddress       *string  `json:"CustomerAddress"`
	CustomerStatus        *int     `json:"CustomerStatus"`
	CustomerDateOfBirth   *string  `json:"CustomerDateOfBirth"`
	CustomerIncome        *float64 `json:"CustomerIncome"`
	CustomerMaritalStatus *string  `json:"CustomerMaritalStatus"`
	CustomerRace          *string  `json:"CustomerRace"`
	CustomerIsBumi        *int     `json:"CustomerIsBumi"`
	CustomerLanguage      *string  `json:"CustomerLanguage"`
	CustomerTag           *int     `json:"CustomerTag"`
	Remark                *string  `json:"Remark"`
	Audit
}
