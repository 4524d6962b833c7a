package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/utils"
)

const testSecret = "middleware-test-secret"

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authz string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewToken(testSecret, "u-1", "alice", model.RoleAdmin, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUUID, gotRole any
	next := func(c echo.Context) error {
		gotUUID = c.Get(CtxUserUUID)
		gotRole = c.Get(CtxRole)
		return c.NoContent(http.StatusOK)
	}
	if err := JWTAuth(testSecret)(next)(c); err != nil {
		t.Fatalf("JWTAuth: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotUUID != "u-1" || gotRole != model.RoleAdmin {
		t.Errorf("context identity = %v/%v", gotUUID, gotRole)
	}
}

func TestJWTAuthSchemeCaseInsensitive(t *testing.T) {
	tok, err := utils.NewToken(testSecret, "u-1", "alice", model.RoleAdmin, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	for _, scheme := range []string{"bearer", "Bearer", "BEARER"} {
		rec := doRequest(t, JWTAuth(testSecret), scheme+" "+tok)
		if rec.Code != http.StatusOK {
			t.Errorf("scheme %q: status = %d, want 200", scheme, rec.Code)
		}
	}
}

func TestJWTAuthRejections(t *testing.T) {
	expired, _ := utils.NewToken(testSecret, "u-1", "alice", model.RoleAdmin, -time.Minute)
	wrongSecret, _ := utils.NewToken("other-secret", "u-1", "alice", model.RoleAdmin, time.Minute)

	cases := []struct {
		name  string
		authz string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expired},
		{"wrong secret", "Bearer " + wrongSecret},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, JWTAuth(testSecret), tc.authz)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

type fakeGroups struct {
	names map[string][]string
	calls int
}

func (f *fakeGroups) ListGroupNamesForUser(_ context.Context, userUUID string) ([]string, error) {
	f.calls++
	return f.names[userUUID], nil
}

func accessRequest(t *testing.T, op, userUUID, role string, groups GroupLister) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userUUID != "" {
		c.Set(CtxUserUUID, userUUID)
		c.Set(CtxRole, role)
	}
	if err := RequireAccess(op, groups)(okHandler)(c); err != nil {
		t.Fatalf("RequireAccess: %v", err)
	}
	return rec
}

func TestRequireAccess(t *testing.T) {
	groups := &fakeGroups{names: map[string][]string{
		"u-sales": {"customers", "leads"},
		"u-none":  {},
	}}

	if rec := accessRequest(t, "customers.read", "u-sales", model.RoleUser, groups); rec.Code != http.StatusOK {
		t.Errorf("grouped read: status = %d, want 200", rec.Code)
	}
	if rec := accessRequest(t, "customers.read", "u-none", model.RoleUser, groups); rec.Code != http.StatusForbidden {
		t.Errorf("no group: status = %d, want 403", rec.Code)
	}
	if rec := accessRequest(t, "customers.delete", "u-sales", model.RoleUser, groups); rec.Code != http.StatusForbidden {
		t.Errorf("role gate: status = %d, want 403", rec.Code)
	}
	if rec := accessRequest(t, "customers.read", "", "", groups); rec.Code != http.StatusForbidden {
		t.Errorf("unauthenticated: status = %d, want 403", rec.Code)
	}
	if rec := accessRequest(t, "unknown.op", "u-sales", model.RoleAdmin, groups); rec.Code != http.StatusForbidden {
		t.Errorf("unknown op: status = %d, want 403", rec.Code)
	}
}

func TestRequireAccessSkipsGroupFetchForUngroupedOps(t *testing.T) {
	groups := &fakeGroups{names: map[string][]string{}}
	rec := accessRequest(t, "users.read", "u-admin", model.RoleAdmin, groups)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if groups.calls != 0 {
		t.Errorf("group lookups = %d, want 0 for role-only rule", groups.calls)
	}
}
