package model

// SalesAgent mirrors the `sales` table. Foreign-key columns:
//
//	AgentGender         -> global_gender.Gender
//	AgentEmail          -> global_email.Email
//	AgentContactNo      -> global_contact.Contact
//	AgentNationality    -> global_country.Country
//	AgentAddress        -> global_address.AddressUUID
//	SalesGroupingID     -> sales_grouping.SalesGroupingID
//	SalesTeamID         -> sales_team.SalesTeamID
//	SalesTypeID         -> sales_type.SalesTypeID
type SalesAgent struct {
	SalesAgentID      string  `json:"SalesAgentID"`
	AgentName         string  `json:"AgentName"`
	AgentAge          *int    `json:"AgentAge"`
	AgentGender       *string `json:"AgentGender"`
	AgentEmail        *string `json:"AgentEmail"`
	AgentICPassportNo *string `json:"AgentICPassportNo"`
	AgentSalutation   *string `json:"AgentSalutation"`
	AgentNationality  *string `json:"AgentNationality"`
	AgentContactNo    *string `json:"AgentContactNo"`
	AgentAddress      *string `json:"AgentAddress"`
	SalesGroupingID   *int    `json:"SalesGroupingID"`
	SalesTeamID       *int    `json:"SalesTeamID"`
	SalesTypeID       *int    `json:"SalesTypeID"`
	Remark            *string `json:"Remark"`
	Audit
}
