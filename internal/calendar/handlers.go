package calendar

import (
	"net/http"
	"time"

	"github.com/emersion/go-ical"
	"github.com/rs/zerolog/hlog"

	"roombooking/internal/api"
	"roombooking/internal/booking"
)

type Handlers struct {
	Bookings *booking.Service
	Now      func() time.Time
}

// ICS serves GET /calendar.ics[?space_id=] with approved reservations only.
func (h Handlers) ICS(w http.ResponseWriter, r *http.Request) {
	f := booking.Filter{Status: booking.StatusApproved, SpaceID: r.URL.Query().Get("space_id")}
	rs, err := h.Bookings.List(r.Context(), f)
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}
	spaces, err := h.Bookings.Spaces(r.Context())
	if err != nil {
		api.WriteServiceError(w, r, err)
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	cal := Feed(spaces, rs, r.Host, now())

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="reservations.ics"`)
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode calendar")
	}
}
