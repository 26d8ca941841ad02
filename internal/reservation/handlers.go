// Package reservation serves the booking HTTP endpoints.
package reservation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"roombooking/internal/api"
	"roombooking/internal/booking"
)

type Handlers struct {
	Bookings *booking.Service
}

// List returns approved reservations to everyone. Other statuses need an admin session.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := h.Bookings.ParseFilter(q.Get("status"), q.Get("space_id"), q.Get("from"), q.Get("to"))
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	if !f.Public() && !api.IsAdmin(r.Context()) {
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "admin session required")
		return
	}

	items, err := h.Bookings.List(r.Context(), f)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

// Queue is the admin landing view: reservations awaiting a decision, earliest first.
func (h Handlers) Queue(w http.ResponseWriter, r *http.Request) {
	items, err := h.Bookings.List(r.Context(), booking.Filter{Status: booking.StatusPending})
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.Bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req booking.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeBadRequest, "invalid json")
		return
	}

	res, err := h.Bookings.Submit(r.Context(), req)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().
		Str("reservation_id", res.ID).
		Str("space_id", res.SpaceID).
		Time("start_at", res.StartAt).
		Msg("reservation submitted")
	api.WriteJSON(w, http.StatusCreated, res)
}

type PatchRequest struct {
	Status string `json:"status"`
}

func (h Handlers) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeBadRequest, "invalid json")
		return
	}
	h.transition(w, r, chi.URLParam(r, "id"), req.Status)
}

// AdminStatus is the query-string form of Patch: POST /admin/status?id=&to=.
func (h Handlers) AdminStatus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.transition(w, r, q.Get("id"), q.Get("to"))
}

func (h Handlers) transition(w http.ResponseWriter, r *http.Request, id, to string) {
	res, err := h.Bookings.Transition(r.Context(), id, to)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().
		Str("reservation_id", res.ID).
		Str("status", string(res.Status)).
		Msg("reservation status set")
	api.WriteJSON(w, http.StatusOK, res)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Bookings.Delete(r.Context(), id); err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Str("reservation_id", id).Msg("reservation deleted")
	api.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Usage summarizes bookings per space for GET /admin/usage?from=&to=&space_id=.
func (h Handlers) Usage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := h.Bookings.ParseFilter(booking.StatusAll, q.Get("space_id"), q.Get("from"), q.Get("to"))
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	rows, err := h.Bookings.Usage(r.Context(), f)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, rows)
}
