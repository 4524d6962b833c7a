package repository

import (
	"sort"
	"time"
)

// buildSet renders a deterministic "SET a = ?, b = ?" clause from a partial
// update map, dropping any column not in the whitelist, and appends the
// audit stamp (ModifiedBy / DateModified). Returns "" when nothing
// whitelisted remains.
func buildSet(cols map[string]any, allowed map[string]bool, actor string) (string, []any) {
	keys := make([]string, 0, len(cols))
	for k := range cols {
		if allowed[k] {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return "", nil
	}
	sort.Strings(keys)

	set := ""
	args := make([]any, 0, len(keys)+2)
	for _, k := range keys {
		if set != "" {
			set += ", "
		}
		set += k + " = ?"
		args = append(args, cols[k])
	}
	set += ", ModifiedBy = ?, DateModified = ?"
	args = append(args, actor, time.Now().UTC())
	return set, args
}
