package service

import (
	"context"
	"fmt"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
)

// ForeignKeyError reports a request field whose value references a row
// that does not exist. Handlers render it as a 400 naming the field.
type ForeignKeyError struct {
	Field string
	Table string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("invalid reference for %s: no matching row in %s", e.Field, e.Table)
}

// FKRule binds an entity field to the table its value must exist in.
// Dynamic rules point at shared reference tables (contact, email,
// country, address) whose rows are created on demand during entity
// create; the resolver handles those, so create-time validation checks
// static rules only. Updates check every rule, dynamic included, since
// updates never create reference rows.
type FKRule struct {
	Field   string
	Table   string
	Dynamic bool
}

var customerRules = []FKRule{
	{Field: "CustomerGender", Table: "global_gender"},
	{Field: "CustomerStatus", Table: "customer_status"},
	{Field: "CustomerMaritalStatus", Table: "global_marital_status"},
	{Field: "CustomerRace", Table: "global_race"},
	{Field: "CustomerLanguage", Table: "global_language"},
	{Field: "CustomerTag", Table: "customer_taglist"},
	{Field: "CustomerNationality", Table: "global_country", Dynamic: true},
	{Field: "CustomerContactNo", Table: "global_contact", Dynamic: true},
	{Field: "CustomerEmail", Table: "global_email", Dynamic: true},
	{Field: "CustomerAddress", Table: "global_address", Dynamic: true},
}

var leadRules = []FKRule{
	{Field: "LeadGender", Table: "global_gender"},
	{Field: "LeadStatus", Table: "lead_status"},
	{Field: "LeadMaritalStatus", Table: "global_marital_status"},
	{Field: "LeadRace", Table: "global_race"},
	{Field: "LeadTag", Table: "lead_taglist"},
	{Field: "LeadNationality", Table: "global_country", Dynamic: true},
	{Field: "LeadContactNo", Table: "global_contact", Dynamic: true},
	{Field: "LeadEmail", Table: "global_email", Dynamic: true},
	{Field: "LeadAddress", Table: "global_address", Dynamic: true},
}

var salesRules = []FKRule{
	{Field: "AgentGender", Table: "global_gender"},
	{Field: "SalesGroupingID", Table: "sales_grouping"},
	{Field: "SalesTeamID", Table: "sales_team"},
	{Field: "SalesTypeID", Table: "sales_type"},
	{Field: "AgentNationality", Table: "global_country", Dynamic: true},
	{Field: "AgentContactNo", Table: "global_contact", Dynamic: true},
	{Field: "AgentEmail", Table: "global_email", Dynamic: true},
	{Field: "AgentAddress", Table: "global_address", Dynamic: true},
}

func putStr(m map[string]any, field string, v *string) {
	if v != nil {
		m[field] = *v
	}
}

func putInt(m map[string]any, field string, v *int) {
	if v != nil {
		m[field] = *v
	}
}

func customerFKValues(c *model.Customer) map[string]any {
	m := map[string]any{}
	putStr(m, "CustomerGender", c.CustomerGender)
	putInt(m, "CustomerStatus", c.CustomerStatus)
	putStr(m, "CustomerMaritalStatus", c.CustomerMaritalStatus)
	putStr(m, "CustomerRace", c.CustomerRace)
	putStr(m, "CustomerLanguage", c.CustomerLanguage)
	putInt(m, "CustomerTag", c.CustomerTag)
	putStr(m, "CustomerNationality", c.CustomerNationality)
	putStr(m, "CustomerContactNo", c.CustomerContactNo)
	putStr(m, "CustomerEmail", c.CustomerEmail)
	putStr(m, "CustomerAddress", c.CustomerAddress)
	return m
}

func leadFKValues(l *model.Lead) map[string]any {
	m := map[string]any{}
	putStr(m, "LeadGender", l.LeadGender)
	putInt(m, "LeadStatus", l.LeadStatus)
	putStr(m, "LeadMaritalStatus", l.LeadMaritalStatus)
	putStr(m, "LeadRace", l.LeadRace)
	putInt(m, "LeadTag", l.LeadTag)
	putStr(m, "LeadNationality", l.LeadNationality)
	putStr(m, "LeadContactNo", l.LeadContactNo)
	putStr(m, "LeadEmail", l.LeadEmail)
	putStr(m, "LeadAddress", l.LeadAddress)
	return m
}

func salesFKValues(s *model.SalesAgent) map[string]any {
	m := map[string]any{}
	putStr(m, "AgentGender", s.AgentGender)
	putInt(m, "SalesGroupingID", s.SalesGroupingID)
	putInt(m, "SalesTeamID", s.SalesTeamID)
	putInt(m, "SalesTypeID", s.SalesTypeID)
	putStr(m, "AgentNationality", s.AgentNationality)
	putStr(m, "AgentContactNo", s.AgentContactNo)
	putStr(m, "AgentEmail", s.AgentEmail)
	putStr(m, "AgentAddress", s.AgentAddress)
	return m
}

// validateFK checks every rule whose field appears in values. Dynamic
// rules are skipped unless includeDynamic is set. The first missing
// reference aborts with a ForeignKeyError.
func validateFK(ctx context.Context, lookups LookupStore, rules []FKRule, values map[string]any, includeDynamic bool) error {
	for _, rule := range rules {
		if rule.Dynamic && !includeDynamic {
			continue
		}
		v, present := values[rule.Field]
		if !present || v == nil {
			continue
		}
		ok, err := lookups.Exists(ctx, rule.Table, v)
		if err != nil {
			return err
		}
		if !ok {
			return &ForeignKeyError{Field: rule.Field, Table: rule.Table}
		}
	}
	return nil
}
