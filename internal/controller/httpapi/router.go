package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter собирает chi-роутер со всеми маршрутами API.
// Пустой allowedOrigins разрешает все origins, как у исходного API.
func NewRouter(h *Handlers, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HandleHealth)
	r.Post("/auth/verify", h.HandleAuthVerify)

	r.Get("/doctor", h.HandleDoctor)
	r.Get("/awards", h.HandleAwards)
	r.Get("/reviews", h.HandleReviews)

	r.Get("/availability", h.HandleAvailability)
	r.Get("/availability/image", h.HandleAvailabilityImage)

	r.Route("/booking", func(r chi.Router) {
		r.Post("/", h.HandleCreateBooking)
		r.Get("/{id}", h.HandleGetBooking)
		r.Get("/{id}/ics", h.HandleBookingInvite)
	})

	return r
}
