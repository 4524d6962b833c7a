package policy

import (
	"testing"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
)

func TestCheck(t *testing.T) {
	cases := []struct {
		name   string
		op     string
		role   string
		groups []string
		want   bool
	}{
		{"user reads customers with group", "customers.read", model.RoleUser, []string{"customers"}, true},
		{"user reads customers without group", "customers.read", model.RoleUser, nil, false},
		{"user cannot create customers", "customers.create", model.RoleUser, []string{"customers"}, false},
		{"editor creates customers with group", "customers.create", model.RoleEditor, []string{"customers"}, true},
		{"editor cannot delete customers", "customers.delete", model.RoleEditor, []string{"customers"}, false},
		{"admin deletes customers with group", "customers.delete", model.RoleAdmin, []string{"customers"}, true},
		{"admin without group denied", "customers.delete", model.RoleAdmin, []string{"leads"}, false},
		{"wrong group does not leak across entities", "leads.read", model.RoleUser, []string{"customers"}, false},
		{"user cannot read users", "users.read", model.RoleUser, nil, false},
		{"editor reads users", "users.read", model.RoleEditor, nil, true},
		{"editor cannot create users", "users.create", model.RoleEditor, nil, false},
		{"admin manages groups", "groups.manage", model.RoleAdmin, nil, true},
		{"editor cannot manage groups", "groups.manage", model.RoleEditor, nil, false},
		{"any role touches emergency contacts", "emergency.create", model.RoleUser, nil, true},
		{"unknown op denied", "customers.export", model.RoleAdmin, []string{"customers"}, false},
		{"unknown role denied", "customers.read", "superuser", []string{"customers"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Check(tc.op, tc.role, tc.groups); got != tc.want {
				t.Fatalf("Check(%q, %q, %v) = %v, want %v", tc.op, tc.role, tc.groups, got, tc.want)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("nonexistent.op"); ok {
		t.Fatal("expected unknown operation to miss the table")
	}
}

func TestEveryRuleHasRoles(t *testing.T) {
	for op, rule := range rules {
		if len(rule.Roles) == 0 {
			t.Errorf("rule %q allows no roles; it can never pass", op)
		}
	}
}
