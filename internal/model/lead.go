package model

// Lead mirrors the `leads` table. Foreign-key columns:
//
//	LeadEmail         -> global_email.Email
//	LeadContactNo     -> global_contact.Contact
//	LeadGender        -> global_gender.Gender
//	LeadNationality   -> global_country.Country
//	LeadAddress       -> global_address.AddressUUID
//	LeadStatus        -> lead_status.StatusID
//	LeadMaritalStatus -> global_marital_status.MaritalStatus
//	LeadRace          -> global_race.Race
//	LeadTag           -> lead_taglist.TagID
type Lead struct {
	LeadUUID            string   `json:"LeadUUID"`
	LeadName            string   `json:"LeadName"`
	LeadEmail           *string  `json:"LeadEmail"`
	LeadContactNo       *string  `json:"LeadContactNo"`
	LeadICPassportNo    *string  `json:"LeadICPassportNo"`
	LeadGender          *string  `json:"LeadGender"`
	LeadSalutation      *string  `json:"LeadSalutation"`
	LeadOccupation      *string  `json:"LeadOccupation"`
	LeadNationality     *string  `json:"LeadNationality"`
	LeadAddress         *string  `json:"LeadAddress"`
	LeadStatus          *int     `json:"LeadStatus"`
	LeadDateOfBirth     *string  `json:"LeadDateOfBirth"`
	LeadIncome          *float64 `json:"LeadIncome"`
	LeadMaritalStatus   *string  `json:"LeadMaritalStatus"`
	LeadRace            *string  `json:"LeadRace"`
	LeadIsBumi          *int     `json:"LeadIsBumi"`
	LeadInterestedType1 *string  `json:"LeadInterestedType1"`
	LeadInterestedType2 *string  `json:"LeadInterestedType2"`
	LeadIsExistingBuyer *int     `json:"LeadIsExistingBuyer"`
	LeadTag             *int     `json:"LeadTag"`
	Remark              *string  `json:"Remark"`
	Audit
}
