package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
)

func TestValidateFKSkipsDynamicOnCreate(t *testing.T) {
	lookups := &fakeLookups{rows: map[string]map[string]bool{
		"global_gender": {"Male": true},
		// global_contact intentionally empty: dynamic, resolver's job
	}}
	values := map[string]any{
		"CustomerGender":    "Male",
		"CustomerContactNo": "0100000000",
	}
	if err := validateFK(context.Background(), lookups, customerRules, values, false); err != nil {
		t.Fatalf("create-time validation should skip dynamic rules: %v", err)
	}

	err := validateFK(context.Background(), lookups, customerRules, values, true)
	var fkErr *ForeignKeyError
	if !errors.As(err, &fkErr) {
		t.Fatalf("update-time validation should check dynamic rules, got %v", err)
	}
	if fkErr.Field != "CustomerContactNo" {
		t.Errorf("Field = %q, want CustomerContactNo", fkErr.Field)
	}
}

func TestValidateFKIgnoresAbsentFields(t *testing.T) {
	lookups := &fakeLookups{rows: map[string]map[string]bool{}}
	if err := validateFK(context.Background(), lookups, customerRules, map[string]any{}, true); err != nil {
		t.Fatalf("no fields set should validate cleanly: %v", err)
	}
}

func TestValidateFKPropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	lookups := &fakeLookups{err: boom}
	err := validateFK(context.Background(), lookups, customerRules,
		map[string]any{"CustomerGender": "Male"}, false)
	if err != boom {
		t.Fatalf("err = %v, want the store error", err)
	}
}

func TestFKValueBuildersSkipNils(t *testing.T) {
	c := &model.Customer{CustomerName: "only name"}
	if got := customerFKValues(c); len(got) != 0 {
		t.Errorf("customerFKValues = %v, want empty", got)
	}

	l := &model.Lead{LeadStatus: intptr(2), LeadRace: strptr("Malay")}
	got := leadFKValues(l)
	if got["LeadStatus"] != 2 || got["LeadRace"] != "Malay" || len(got) != 2 {
		t.Errorf("leadFKValues = %v", got)
	}

	s := &model.SalesAgent{SalesTeamID: intptr(7)}
	if got := salesFKValues(s); got["SalesTeamID"] != 7 || len(got) != 1 {
		t.Errorf("salesFKValues = %v", got)
	}
}
