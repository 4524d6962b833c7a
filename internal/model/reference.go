package model

// Shared reference rows. These are deduplicated lookup records referenced by
// customers, leads and sales agents. Contact, email and country use their
// raw value as the natural key; addresses get a generated UUID. Reference
// rows are created lazily at entity-create time and are never deleted when
// an owning entity is removed, since other entities may share them.

// Address mirrors `global_address`.
type Address struct {
	AddressUUID string  `json:"AddressUUID"`
	Address     string  `json:"Address"`
	Postcode    *string `json:"Postcode"`
	City        *string `json:"City"`
	State       *string `json:"State"`
	Country     *string `json:"Country"`
	Remark      *string `json:"Remark"`
	Audit
}

// AddressInput is the embedded address object accepted on entity create
// payloads. When AddressUUID is empty a new UUID is generated and the row is
// created; otherwise the existing row is reused as-is.
type AddressInput struct {
	AddressUUID string  `json:"AddressUUID"`
	Address     string  `json:"Address" validate:"required"`
	Postcode    *string `json:"Postcode"`
	City        *string `json:"City"`
	State       *string `json:"State"`
	Country     *string `json:"Country"`
}

// Contact mirrors `global_contact`; the phone string is the primary key.
type Contact struct {
	Contact string  `json:"Contact"`
	Remark  *string `json:"Remark"`
	Audit
}

// Email mirrors `global_email`; the address string is the primary key.
type Email struct {
	Email  string  `json:"Email"`
	Remark *string `json:"Remark"`
	Audit
}

// Country mirrors `global_country`; the country name is the primary key.
type Country struct {
	Country string  `json:"Country"`
	Remark  *string `json:"Remark"`
	Audit
}
