package api_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"roombooking/internal/api"
	"roombooking/internal/booking"
)

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{booking.ValidationError{Code: booking.CodeMissingField, Message: "missing"}, http.StatusBadRequest, booking.CodeMissingField},
		{booking.ErrNotFound, http.StatusNotFound, api.CodeNotFound},
		{fmt.Errorf("insert: %w", &booking.OverlapError{ConflictingID: "x"}), http.StatusConflict, api.CodeOverlapConflict},
		{fmt.Errorf("%w: update did not apply", booking.ErrConflict), http.StatusConflict, api.CodeConflict},
		{errors.New("db down"), http.StatusInternalServerError, api.CodeInternal},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		api.WriteServiceError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), tc.err)
		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		var body api.ErrorBody
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Code != tc.code || body.Error == "" {
			t.Fatalf("%v: unexpected body %+v", tc.err, body)
		}
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	api.WriteServiceError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), errors.New("password=hunter2"))
	var body api.ErrorBody
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != "internal error" {
		t.Fatalf("expected generic message, got %q", body.Error)
	}
}

func TestAdminContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if api.IsAdmin(r.Context()) {
		t.Fatalf("fresh request must not be admin")
	}
	if !api.IsAdmin(api.WithAdmin(r.Context())) {
		t.Fatalf("expected admin after WithAdmin")
	}
}
