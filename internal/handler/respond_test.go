package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/service"
)

func TestRespondErrMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound, "Record not found"},
		{"conflict", repository.ErrConflict, http.StatusConflict, "Record already exists"},
		{"empty update", repository.ErrEmptyUpdate, http.StatusBadRequest, "No updatable fields"},
		{"foreign key", &service.ForeignKeyError{Field: "CustomerGender", Table: "global_gender"},
			http.StatusBadRequest, "invalid reference for CustomerGender: no matching row in global_gender"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			if err := respondErr(c, tc.err); err != nil {
				t.Fatalf("respondErr: %v", err)
			}
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body["message"] != tc.message {
				t.Errorf("message = %q, want %q", body["message"], tc.message)
			}
		})
	}
}

func TestRespondErrBubblesUnknown(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	boom := errors.New("driver exploded")
	if err := respondErr(c, boom); err != boom {
		t.Fatalf("err = %v, want the original error", err)
	}
}
