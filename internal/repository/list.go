package repository

import (
	"fmt"
	"strings"
)

const (
	// DefaultPageSize applies when the client omits pageSize.
	DefaultPageSize = 10
	// MaxPageSize caps pageSize; larger requests are silently clamped.
	MaxPageSize = 50
)

// ListQuery carries pagination, an optional exact-match filter and an
// optional sort for collection reads. Filter and sort fields are resolved
// against per-entity whitelists; unrecognised fields are dropped rather
// than rejected.
type ListQuery struct {
	Page      int
	PageSize  int
	FilterCol string
	FilterVal string
	SortCol   string
	SortDesc  bool
}

// Clamp normalizes pagination bounds and resolves filter/sort fields
// against the given whitelists (payload field name -> column name). It must
// run before the query is composed into SQL: afterwards FilterCol and
// SortCol only ever hold whitelisted column names.
func (q *ListQuery) Clamp(filterable, sortable map[string]string) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if col, ok := filterable[q.FilterCol]; ok && q.FilterVal != "" {
		q.FilterCol = col
	} else {
		q.FilterCol, q.FilterVal = "", ""
	}
	if col, ok := sortable[q.SortCol]; ok {
		q.SortCol = col
	} else {
		q.SortCol = ""
		q.SortDesc = false
	}
}

// CacheKey returns a stable cache-key fragment identifying this query.
func (q ListQuery) CacheKey() string {
	dir := "asc"
	if q.SortDesc {
		dir = "desc"
	}
	return fmt.Sprintf("list:%d:%d:%s=%s:%s:%s",
		q.Page, q.PageSize, q.FilterCol, q.FilterVal, q.SortCol, dir)
}

// clauses renders the WHERE/ORDER BY/LIMIT tail for a clamped query.
// Column names were whitelisted by Clamp; only values travel as args.
func (q ListQuery) clauses() (string, []any) {
	var b strings.Builder
	args := []any{}
	b.WriteString(" WHERE Deleted = 0")
	if q.FilterCol != "" {
		b.WriteString(" AND " + q.FilterCol + " = ?")
		args = append(args, q.FilterVal)
	}
	if q.SortCol != "" {
		b.WriteString(" ORDER BY " + q.SortCol)
		if q.SortDesc {
			b.WriteString(" DESC")
		}
	}
	b.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)
	return b.String(), args
}
