package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"roombooking/internal/booking"
)

const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeOverlapConflict = "OVERLAP_CONFLICT"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL"
)

type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorBody{Error: message, Code: code})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteServiceError maps booking errors onto the HTTP error contract. Unexpected errors
// are logged and answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve booking.ValidationError
	var oe *booking.OverlapError
	switch {
	case errors.As(err, &ve):
		WriteError(w, http.StatusBadRequest, ve.Code, ve.Message)
	case errors.Is(err, booking.ErrNotFound):
		WriteError(w, http.StatusNotFound, CodeNotFound, "reservation not found")
	case errors.As(err, &oe):
		WriteError(w, http.StatusConflict, CodeOverlapConflict, oe.Error())
	case errors.Is(err, booking.ErrConflict):
		WriteError(w, http.StatusConflict, CodeConflict, err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		WriteError(w, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
