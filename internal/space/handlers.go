package space

import (
	"net/http"

	"roombooking/internal/api"
	"roombooking/internal/booking"
)

type Handlers struct {
	Bookings *booking.Service
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.Bookings.Spaces(r.Context())
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, spaces)
}
