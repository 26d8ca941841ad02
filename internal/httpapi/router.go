package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"roombooking/internal/adminauth"
	"roombooking/internal/api"
	"roombooking/internal/booking"
	"roombooking/internal/calendar"
	"roombooking/internal/reservation"
	"roombooking/internal/space"
	"roombooking/pkg/config"
)

type Dependencies struct {
	Cfg      config.Config
	Logger   zerolog.Logger
	Bookings *booking.Service
	Auth     *adminauth.Authenticator
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(api.AccessLog(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(api.CORS(deps.Cfg.AllowedOrigins))
	r.Use(deps.Auth.Session)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	reservationHandlers := reservation.Handlers{Bookings: deps.Bookings}
	spaceHandlers := space.Handlers{Bookings: deps.Bookings}
	calendarHandlers := calendar.Handlers{Bookings: deps.Bookings}
	authHandlers := adminauth.Handlers{Auth: deps.Auth}

	// Public
	r.Get("/spaces", spaceHandlers.List)
	r.Get("/calendar.ics", calendarHandlers.ICS)
	r.Post("/admin-login", authHandlers.Login)
	r.Post("/auth/logout", authHandlers.Logout)

	r.Route("/reservations", func(r chi.Router) {
		// Listing checks the session itself: approved is public, the rest is admin-only.
		r.Get("/", reservationHandlers.List)
		r.Post("/", reservationHandlers.Create)
		r.Get("/{id}", reservationHandlers.Get)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireAdmin)
			r.Patch("/{id}", reservationHandlers.Patch)
			r.Delete("/{id}", reservationHandlers.Delete)
		})
	})

	// Admin pages and actions
	r.Route("/admin", func(r chi.Router) {
		r.Use(deps.Auth.Gate)
		r.Get("/", reservationHandlers.Queue)
		r.Get("/login", authHandlers.LoginPage)
		r.Get("/session", authHandlers.Session)
		r.Post("/status", reservationHandlers.AdminStatus)
		r.Get("/usage", reservationHandlers.Usage)
	})

	return r
}
