package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/config"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/utils"
)

type fakeUserStore struct {
	byUsername map[string]*model.User
	byID       map[string]*model.User
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	f := &fakeUserStore{byUsername: map[string]*model.User{}, byID: map[string]*model.User{}}
	for _, u := range users {
		f.byUsername[u.Username] = u
		f.byID[u.UserUUID] = u
	}
	return f
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return *u, nil
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (model.User, error) {
	if u, ok := f.byID[id]; ok {
		return *u, nil
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) UpdateRefreshToken(_ context.Context, id string, token *string) error {
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

func authTestConfig() config.Config {
	return config.Config{
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTTL:        time.Hour,
		RefreshTTL:       7 * 24 * time.Hour,
	}
}

func authFixture(t *testing.T) (*AuthHandler, *fakeUserStore, *model.User) {
	t.Helper()
	hash, err := utils.HashPassword("s3cret", 4)
	if err != nil {
		t.Fatal(err)
	}
	u := &model.User{
		UserUUID: "u-1",
		Username: "alice",
		Password: hash,
		Role:     model.RoleAdmin,
	}
	store := newFakeUserStore(u)
	return NewAuthHandler(store, authTestConfig(), zerolog.Nop()), store, u
}

func postJSON(t *testing.T, path, body string, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewRequestValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, ck := range res.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestLoginSuccess(t *testing.T) {
	h, store, _ := authFixture(t)
	c, rec := postJSON(t, "/api/v1/users/login", `{"Username":"alice","Password":"s3cret"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	claims, err := utils.VerifyToken("access-secret", body["accessToken"])
	if err != nil {
		t.Fatalf("returned access token does not verify: %v", err)
	}
	if claims.Subject != "u-1" || claims.Role != model.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}

	ck := findCookie(rec, refreshCookie)
	if ck == nil {
		t.Fatal("no refresh cookie set")
	}
	if !ck.HttpOnly {
		t.Error("refresh cookie must be http-only")
	}
	if stored := store.byID["u-1"].RefreshToken; stored == nil || *stored != ck.Value {
		t.Error("refresh token not persisted on user row")
	}
	if _, err := utils.VerifyToken("refresh-secret", ck.Value); err != nil {
		t.Errorf("refresh cookie does not verify: %v", err)
	}
	if _, err := utils.VerifyToken("access-secret", ck.Value); err == nil {
		t.Error("refresh token verifies under the access secret; secrets must differ")
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	h, _, _ := authFixture(t)

	for name, payload := range map[string]string{
		"wrong password": `{"Username":"alice","Password":"nope"}`,
		"unknown user":   `{"Username":"mallory","Password":"s3cret"}`,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := postJSON(t, "/api/v1/users/login", payload)
			if err := h.Login(c); err != nil {
				t.Fatalf("Login: %v", err)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			var body map[string]string
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if body["message"] != "Authentication failed" {
				t.Errorf("message = %q, responses must not distinguish failure causes", body["message"])
			}
		})
	}
}

func TestLoginMissingFields(t *testing.T) {
	h, _, _ := authFixture(t)
	c, _ := postJSON(t, "/api/v1/users/login", `{"Username":"alice"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("want 400 HTTPError, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	h, store, u := authFixture(t)

	// establish a session
	c, rec := postJSON(t, "/api/v1/users/login", `{"Username":"alice","Password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatal(err)
	}
	first := findCookie(rec, refreshCookie)

	c2, rec2 := postJSON(t, "/api/v1/users/refresh", "", first)
	if err := h.Refresh(c2); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec2.Code, rec2.Body.String())
	}
	second := findCookie(rec2, refreshCookie)
	if second == nil {
		t.Fatal("no rotated refresh cookie")
	}
	if stored := store.byID[u.UserUUID].RefreshToken; stored == nil || *stored != second.Value {
		t.Error("rotated token not persisted")
	}

	// the first token is now stale and must be rejected
	c3, rec3 := postJSON(t, "/api/v1/users/refresh", "", first)
	if err := h.Refresh(c3); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rec3.Code != http.StatusForbidden {
		t.Fatalf("stale refresh: status = %d, want 403", rec3.Code)
	}
}

func TestRefreshRejectsForgedAndMissingTokens(t *testing.T) {
	h, _, _ := authFixture(t)

	// no cookie at all
	c, rec := postJSON(t, "/api/v1/users/refresh", "")
	if err := h.Refresh(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing cookie: status = %d", rec.Code)
	}

	// a token signed with the access secret must not pass as refresh
	forged, _ := utils.NewToken("access-secret", "u-1", "alice", model.RoleAdmin, time.Hour)
	c2, rec2 := postJSON(t, "/api/v1/users/refresh", "", &http.Cookie{Name: refreshCookie, Value: forged})
	if err := h.Refresh(c2); err != nil {
		t.Fatal(err)
	}
	if rec2.Code != http.StatusForbidden {
		t.Fatalf("cross-secret token: status = %d, want 403", rec2.Code)
	}
}

func TestLogoutRevokesAndClears(t *testing.T) {
	h, store, u := authFixture(t)

	c, rec := postJSON(t, "/api/v1/users/login", `{"Username":"alice","Password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatal(err)
	}
	ck := findCookie(rec, refreshCookie)

	c2, rec2 := postJSON(t, "/api/v1/users/logout", "", ck)
	if err := h.Logout(c2); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Fatalf("status = %d", rec2.Code)
	}
	if store.byID[u.UserUUID].RefreshToken != nil {
		t.Error("refresh token not revoked")
	}
	cleared := findCookie(rec2, refreshCookie)
	if cleared == nil || cleared.MaxAge != -1 {
		t.Error("refresh cookie not cleared")
	}

	// logout without a session still answers 200
	c3, rec3 := postJSON(t, "/api/v1/users/logout", "")
	if err := h.Logout(c3); err != nil {
		t.Fatal(err)
	}
	if rec3.Code != http.StatusOK {
		t.Fatalf("sessionless logout: status = %d", rec3.Code)
	}
}
