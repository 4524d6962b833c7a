package repository

import (
	"context"
	"fmt"
)

// lookupTables whitelists every table/column pair the foreign-key validator
// may probe. Identifiers are only ever taken from this map, never from the
// request, so the dynamic query below cannot be injected into.
var lookupTables = map[string]string{
	"global_gender":         "Gender",
	"global_marital_status": "MaritalStatus",
	"global_race":           "Race",
	"global_language":       "Language",
	"global_country":        "Country",
	"global_address":        "AddressUUID",
	"global_contact":        "Contact",
	"global_email":          "Email",
	"customer_status":       "StatusID",
	"lead_status":           "StatusID",
	"customer_taglist":      "TagID",
	"lead_taglist":          "TagID",
	"sales_grouping":        "SalesGroupingID",
	"sales_team":            "SalesTeamID",
	"sales_type":            "SalesTypeID",
}

// LookupRepo answers existence checks against the lookup and reference
// tables. The database schema does not declare these foreign keys, so this
// is the only referential-integrity enforcement for them.
type LookupRepo struct{ DB DBTX }

func NewLookupRepo(db DBTX) *LookupRepo { return &LookupRepo{DB: db} }

// Exists reports whether a row with the given value exists in table. The
// table's key column comes from the whitelist; unknown tables error.
func (r *LookupRepo) Exists(ctx context.Context, table string, value any) (bool, error) {
	column, ok := lookupTables[table]
	if !ok {
		return false, fmt.Errorf("lookup: table %q not whitelisted", table)
	}
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+table+" WHERE "+column+" = ?", value).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
