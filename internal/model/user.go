package model

// Roles recognised by the policy engine. Stored verbatim in users.Role and
// in the JWT "role" claim.
const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidRole reports whether s is one of the enumerated roles.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAdmin || s == RoleEditor
}

// User mirrors the `users` table. Password holds the bcrypt hash and
// RefreshToken the currently active refresh JWT; both are excluded from
// JSON so they never leak through API responses.
type User struct {
	UserUUID     string  `json:"UserUUID"`
	Username     string  `json:"Username"`
	Password     string  `json:"-"`
	Role         string  `json:"Role"`
	RefreshToken *string `json:"-"`
	Remark       *string `json:"Remark"`
	Audit
}
