// Package policy holds the authorization table: which roles and which
// API collection group may perform each operation. The table is the
// single source of truth; handlers never check roles inline.
package policy

import "github.com/jiahongggg/Skyworld-UserAPI/internal/model"

// Rule names who may perform an operation. Roles is the set of allowed
// roles; Group, when non-empty, is the API collection group the user
// must additionally belong to.
type Rule struct {
	Roles map[string]bool
	Group string
}

func roles(rs ...string) map[string]bool {
	m := make(map[string]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

var anyRole = roles(model.RoleUser, model.RoleAdmin, model.RoleEditor)

// rules maps operation names ("entity.action") to their access rule.
// Unknown operations are denied.
var rules = map[string]Rule{
	"customers.read":   {Roles: anyRole, Group: "customers"},
	"customers.create": {Roles: roles(model.RoleAdmin, model.RoleEditor), Group: "customers"},
	"customers.update": {Roles: roles(model.RoleAdmin, model.RoleEditor), Group: "customers"},
	"customers.delete": {Roles: roles(model.RoleAdmin), Group: "customers"},

	"leads.read":   {Roles: anyRole, Group: "leads"},
	"leads.create": {Roles: roles(model.RoleAdmin, model.RoleEditor), Group: "leads"},
	"leads.update": {Roles: roles(model.RoleAdmin, model.RoleEditor), Group: "leads"},
	"leads.delete": {Roles: roles(model.RoleAdmin), Group: "leads"},

	"sales.read":   {Roles: anyRole, Group: "sales"},
	"sales.create": {Roles: roles(model.RoleAdmin, model.RoleEditor), Group: "sales"},
	"sales.update": {Roles: roles(model.RoleAdmin, model.RoleEditor), Group: "sales"},
	"sales.delete": {Roles: roles(model.RoleAdmin), Group: "sales"},

	"users.read":   {Roles: roles(model.RoleAdmin, model.RoleEditor)},
	"users.create": {Roles: roles(model.RoleAdmin)},
	"users.update": {Roles: roles(model.RoleAdmin, model.RoleEditor)},
	"users.delete": {Roles: roles(model.RoleAdmin)},

	"groups.manage": {Roles: roles(model.RoleAdmin)},

	"emergency.read":   {Roles: anyRole},
	"emergency.create": {Roles: anyRole},
	"emergency.update": {Roles: anyRole},
	"emergency.delete": {Roles: anyRole},
}

// Lookup returns the rule for an operation. ok is false for unknown
// operations, which callers must treat as a deny.
func Lookup(op string) (Rule, bool) {
	r, ok := rules[op]
	return r, ok
}

// Check decides whether a user with the given role and group memberships
// may perform op. It fails closed: unknown operations and unknown roles
// are both denied.
func Check(op, role string, groups []string) bool {
	rule, ok := rules[op]
	if !ok {
		return false
	}
	if !rule.Roles[role] {
		return false
	}
	if rule.Group == "" {
		return true
	}
	for _, g := range groups {
		if g == rule.Group {
			return true
		}
	}
	return false
}
