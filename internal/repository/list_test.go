package repository

import "testing"

var (
	testFilterable = map[string]string{"CustomerGender": "CustomerGender"}
	testSortable   = map[string]string{"CustomerName": "CustomerName"}
)

func TestClampDefaults(t *testing.T) {
	q := ListQuery{}
	q.Clamp(testFilterable, testSortable)
	if q.Page != 1 {
		t.Errorf("page = %d, want 1", q.Page)
	}
	if q.PageSize != DefaultPageSize {
		t.Errorf("pageSize = %d, want %d", q.PageSize, DefaultPageSize)
	}
}

func TestClampCapsPageSize(t *testing.T) {
	for _, size := range []int{51, 100, 100000} {
		q := ListQuery{Page: 2, PageSize: size}
		q.Clamp(testFilterable, testSortable)
		if q.PageSize != MaxPageSize {
			t.Errorf("pageSize %d clamped to %d, want %d", size, q.PageSize, MaxPageSize)
		}
	}
}

func TestClampFloorsPage(t *testing.T) {
	q := ListQuery{Page: -3, PageSize: 20}
	q.Clamp(testFilterable, testSortable)
	if q.Page != 1 {
		t.Errorf("page = %d, want 1", q.Page)
	}
	if q.PageSize != 20 {
		t.Errorf("pageSize = %d, want 20", q.PageSize)
	}
}

func TestClampDropsUnknownFilterAndSort(t *testing.T) {
	q := ListQuery{FilterCol: "Password", FilterVal: "x", SortCol: "Password; DROP TABLE users", SortDesc: true}
	q.Clamp(testFilterable, testSortable)
	if q.FilterCol != "" || q.FilterVal != "" {
		t.Errorf("unknown filter kept: %q=%q", q.FilterCol, q.FilterVal)
	}
	if q.SortCol != "" || q.SortDesc {
		t.Errorf("unknown sort kept: %q desc=%v", q.SortCol, q.SortDesc)
	}
}

func TestClampKeepsWhitelisted(t *testing.T) {
	q := ListQuery{FilterCol: "CustomerGender", FilterVal: "Male", SortCol: "CustomerName", SortDesc: true}
	q.Clamp(testFilterable, testSortable)
	if q.FilterCol != "CustomerGender" || q.FilterVal != "Male" {
		t.Errorf("whitelisted filter dropped: %q=%q", q.FilterCol, q.FilterVal)
	}
	if q.SortCol != "CustomerName" || !q.SortDesc {
		t.Errorf("whitelisted sort dropped: %q", q.SortCol)
	}
}

func TestClausesComposition(t *testing.T) {
	q := ListQuery{Page: 3, PageSize: 10, FilterCol: "CustomerGender", FilterVal: "Male", SortCol: "CustomerName"}
	q.Clamp(testFilterable, testSortable)
	sql, args := q.clauses()
	want := " WHERE Deleted = 0 AND CustomerGender = ? ORDER BY CustomerName LIMIT ? OFFSET ?"
	if sql != want {
		t.Errorf("clauses = %q, want %q", sql, want)
	}
	if len(args) != 3 || args[0] != "Male" || args[1] != 10 || args[2] != 20 {
		t.Errorf("args = %v", args)
	}
}

func TestCacheKeyDistinguishesQueries(t *testing.T) {
	a := ListQuery{Page: 1, PageSize: 10}
	b := ListQuery{Page: 2, PageSize: 10}
	if a.CacheKey() == b.CacheKey() {
		t.Error("distinct queries share a cache key")
	}
}
